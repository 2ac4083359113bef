// Package storagetest is a behaviour suite shared by every document store
// backend. Backend packages call Run from their own tests.
package storagetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kudosboards/kudos/backend/internal/service"
	"github.com/kudosboards/kudos/backend/internal/utils"
	"github.com/kudosboards/kudos/shared/domain"
	"github.com/kudosboards/kudos/shared/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Store interface {
	service.BoardStorage
	service.MessageStorage
	service.UserStorage
	SaveUser(ctx context.Context, user domain.User) error
}

// Run executes the whole suite against store. Tests create their own
// uniquely named records, so store may be shared with other tests.
func Run(t *testing.T, store Store) {
	t.Run("users", func(t *testing.T) { testUsers(t, store) })
	t.Run("boards", func(t *testing.T) { testBoards(t, store) })
	t.Run("listing", func(t *testing.T) { testListing(t, store) })
	t.Run("append", func(t *testing.T) { testAppend(t, store) })
	t.Run("pull", func(t *testing.T) { testPull(t, store) })
	t.Run("concurrent appends", func(t *testing.T) { testConcurrentAppends(t, store) })
	t.Run("messages", func(t *testing.T) { testMessages(t, store) })
	t.Run("scenarios", func(t *testing.T) { testScenarios(t, store) })
}

func newUser(t *testing.T, store Store) domain.User {
	t.Helper()
	id := uuid.NewString()
	user := domain.User{Id: id, Username: "user-" + id[:8]}
	require.NoError(t, store.SaveUser(context.Background(), user))
	return user
}

func newBoard(t *testing.T, store Store, level domain.AccessLevel, creator domain.UserId) *domain.Board {
	t.Helper()
	ctx := context.Background()
	id, err := store.CreateBoard(ctx, domain.BoardCreationData{Name: "Board " + creator, AccessLevel: level, Creator: creator})
	require.NoError(t, err)
	board, err := store.GetBoard(ctx, id)
	require.NoError(t, err)
	return board
}

func testUsers(t *testing.T, store Store) {
	ctx := context.Background()
	user := newUser(t, store)

	got, err := store.GetUser(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, user, *got)

	user.Username = user.Username + "-renamed"
	require.NoError(t, store.SaveUser(ctx, user))
	got, err = store.GetUser(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)

	_, err = store.GetUser(ctx, uuid.NewString())
	assert.True(t, errors.IsNotFound(err, "User"))
}

func testBoards(t *testing.T, store Store) {
	ctx := context.Background()
	creator := uuid.NewString()

	id, err := store.CreateBoard(ctx, domain.BoardCreationData{Name: "Thanks", AccessLevel: domain.AccessLink, Creator: creator})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	board, err := store.GetBoard(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, board.Id)
	assert.Equal(t, "Thanks", board.Name)
	assert.Equal(t, domain.AccessLink, board.AccessLevel)
	assert.Equal(t, domain.Members{creator}, board.Members)
	assert.NotNil(t, board.Messages)
	assert.Empty(t, board.Messages)

	_, err = store.GetBoard(ctx, uuid.NewString())
	assert.True(t, errors.IsNotFound(err, "Board"))
}

func testListing(t *testing.T, store Store) {
	ctx := context.Background()
	alice := uuid.NewString()
	bob := uuid.NewString()

	public := newBoard(t, store, domain.AccessPublic, alice)
	link := newBoard(t, store, domain.AccessLink, alice)
	private := newBoard(t, store, domain.AccessPrivate, bob)
	_, err := store.AppendMember(ctx, private.Id, alice)
	require.NoError(t, err)

	mine, err := store.ListBoardsByMember(ctx, alice)
	require.NoError(t, err)
	ids := lo.Map(mine, func(b domain.Board, _ int) domain.BoardId { return b.Id })
	assert.ElementsMatch(t, []domain.BoardId{public.Id, link.Id, private.Id}, ids)

	bobs, err := store.ListBoardsByMember(ctx, bob)
	require.NoError(t, err)
	require.Len(t, bobs, 1)
	assert.Equal(t, private.Id, bobs[0].Id)

	publicBoards, err := store.ListBoardsByAccess(ctx, domain.AccessPublic)
	require.NoError(t, err)
	publicIds := lo.Map(publicBoards, func(b domain.Board, _ int) domain.BoardId { return b.Id })
	assert.Contains(t, publicIds, public.Id)
	assert.NotContains(t, publicIds, link.Id)
	assert.NotContains(t, publicIds, private.Id)
	for _, b := range publicBoards {
		assert.Equal(t, domain.AccessPublic, b.AccessLevel)
	}

	none, err := store.ListBoardsByMember(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testAppend(t *testing.T, store Store) {
	ctx := context.Background()
	creator := uuid.NewString()
	board := newBoard(t, store, domain.AccessPublic, creator)

	res, err := store.AppendMessage(ctx, board.Id, "m1")
	require.NoError(t, err)
	assert.Equal(t, domain.UpdateResult{Matched: 1, Modified: 1}, res)

	// duplicates are kept
	res, err = store.AppendMessage(ctx, board.Id, "m1")
	require.NoError(t, err)
	assert.Equal(t, domain.UpdateResult{Matched: 1, Modified: 1}, res)

	res, err = store.AppendMember(ctx, board.Id, "u2")
	require.NoError(t, err)
	assert.Equal(t, domain.UpdateResult{Matched: 1, Modified: 1}, res)

	got, err := store.GetBoard(ctx, board.Id)
	require.NoError(t, err)
	assert.Equal(t, domain.MessageIds{"m1", "m1"}, got.Messages)
	assert.Equal(t, domain.Members{creator, "u2"}, got.Members)

	res, err = store.AppendMessage(ctx, uuid.NewString(), "m1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Matched)

	res, err = store.AppendMember(ctx, uuid.NewString(), "u2")
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Matched)
}

func testPull(t *testing.T, store Store) {
	ctx := context.Background()
	board := newBoard(t, store, domain.AccessPublic, uuid.NewString())
	for _, id := range []domain.MessageId{"m1", "m2", "m1"} {
		_, err := store.AppendMessage(ctx, board.Id, id)
		require.NoError(t, err)
	}

	res, err := store.PullMessage(ctx, board.Id, "m1")
	require.NoError(t, err)
	assert.Equal(t, domain.UpdateResult{Matched: 1, Modified: 1}, res)

	got, err := store.GetBoard(ctx, board.Id)
	require.NoError(t, err)
	assert.Equal(t, domain.MessageIds{"m2"}, got.Messages)

	// matched but unmodified
	res, err = store.PullMessage(ctx, board.Id, "m1")
	require.NoError(t, err)
	assert.Equal(t, domain.UpdateResult{Matched: 1, Modified: 0}, res)

	got, err = store.GetBoard(ctx, board.Id)
	require.NoError(t, err)
	assert.Equal(t, domain.MessageIds{"m2"}, got.Messages)

	res, err = store.PullMessage(ctx, uuid.NewString(), "m2")
	require.NoError(t, err)
	assert.Equal(t, domain.UpdateResult{Matched: 0, Modified: 0}, res)
}

func testConcurrentAppends(t *testing.T, store Store) {
	ctx := context.Background()
	board := newBoard(t, store, domain.AccessPublic, uuid.NewString())

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.AppendMessage(ctx, board.Id, uuid.NewString())
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := store.GetBoard(ctx, board.Id)
	require.NoError(t, err)
	assert.Len(t, got.Messages, n)
}

func testMessages(t *testing.T, store Store) {
	ctx := context.Background()
	owner := uuid.NewString()
	at := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	created, err := store.CreateMessage(ctx, domain.MessageCreationData{Text: "thanks", Image: "https://img.example/a.png", Owner: &owner}, at)
	require.NoError(t, err)
	require.NotEmpty(t, created.Id)

	got, err := store.GetMessage(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "thanks", got.Text)
	assert.Equal(t, "https://img.example/a.png", got.Image)
	require.NotNil(t, got.Owner)
	assert.Equal(t, owner, *got.Owner)
	assert.True(t, at.Equal(got.CreatedAt))
	assert.True(t, at.Equal(got.ModifiedAt))

	anon, err := store.CreateMessage(ctx, domain.MessageCreationData{Text: "anon"}, at)
	require.NoError(t, err)
	got, err = store.GetMessage(ctx, anon.Id)
	require.NoError(t, err)
	assert.Nil(t, got.Owner)
	assert.Empty(t, got.Image)

	later := at.Add(time.Hour)
	require.NoError(t, store.UpdateMessage(ctx, created.Id, "edited", "", later))
	got, err = store.GetMessage(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)
	assert.Empty(t, got.Image)
	assert.True(t, later.Equal(got.ModifiedAt))
	assert.True(t, at.Equal(got.CreatedAt))

	batch, err := store.GetMessages(ctx, []domain.MessageId{created.Id, uuid.NewString(), anon.Id})
	require.NoError(t, err)
	ids := lo.Map(batch, func(m domain.Message, _ int) domain.MessageId { return m.Id })
	assert.ElementsMatch(t, []domain.MessageId{created.Id, anon.Id}, ids)

	empty, err := store.GetMessages(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, store.DeleteMessage(ctx, anon.Id))
	_, err = store.GetMessage(ctx, anon.Id)
	assert.True(t, errors.IsNotFound(err, "Message"))

	assert.True(t, errors.IsNotFound(store.DeleteMessage(ctx, anon.Id), "Message"))
	assert.True(t, errors.IsNotFound(store.UpdateMessage(ctx, anon.Id, "x", "", later), "Message"))
}

// testScenarios drives the services end to end on the real store.
func testScenarios(t *testing.T, store Store) {
	ctx := context.Background()
	boards := service.NewBoard(store, store, store, utils.NewBoardValidator(100))
	messages := service.NewMessage(store, utils.NewMessageValidator(1000))
	posting := service.NewPosting(boards, messages)

	u1 := newUser(t, store)
	u2 := newUser(t, store)
	u3 := newUser(t, store)
	c1, c2, c3 := domain.Authenticated(u1), domain.Authenticated(u2), domain.Authenticated(u3)

	t.Run("private membership", func(t *testing.T) {
		b1, err := boards.Create(ctx, "Private", domain.AccessPrivate, c1)
		require.NoError(t, err)
		assert.Equal(t, domain.Members{u1.Id}, b1.Members)
		assert.Empty(t, b1.Messages)

		_, err = boards.Get(ctx, b1.Id, c2)
		assert.ErrorIs(t, err, errors.ErrNotAuthorized)

		require.NoError(t, boards.AddUser(ctx, u2.Id, b1.Id, c1))

		got, err := boards.Get(ctx, b1.Id, c2)
		require.NoError(t, err)
		assert.Equal(t, domain.Members{u1.Id, u2.Id}, got.Members)

		_, err = boards.Get(ctx, b1.Id, c3)
		assert.ErrorIs(t, err, errors.ErrNotAuthorized)

		_, err = boards.Get(ctx, b1.Id, domain.Anonymous())
		assert.ErrorIs(t, err, errors.ErrNotAuthenticated)

		assert.ErrorIs(t, boards.AddUser(ctx, u3.Id, b1.Id, c3), errors.ErrNotAuthorized)
		assert.True(t, errors.IsNotFound(boards.AddUser(ctx, uuid.NewString(), b1.Id, c1), "User"))
	})

	t.Run("post, edit and remove", func(t *testing.T) {
		board, err := boards.Create(ctx, "Public", domain.AccessPublic, c1)
		require.NoError(t, err)

		msg, err := posting.Post(ctx, board.Id, "great demo", "", c2)
		require.NoError(t, err)

		got, err := messages.Get(ctx, msg.Id)
		require.NoError(t, err)
		assert.Equal(t, msg.Text, got.Text)
		assert.Equal(t, msg.Image, got.Image)
		assert.Equal(t, msg.Owner, got.Owner)

		read, err := boards.Get(ctx, board.Id, domain.Anonymous())
		require.NoError(t, err)
		listed, err := boards.Messages(ctx, read)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, msg.Id, listed[0].Id)

		_, err = messages.Update(ctx, msg.Id, "hijacked", "", c3)
		assert.ErrorIs(t, err, errors.ErrNotAuthorized)
		assert.ErrorIs(t, posting.Remove(ctx, board.Id, msg.Id, c3), errors.ErrNotAuthorized)

		updated, err := messages.Update(ctx, msg.Id, "great demo!", "https://img.example/demo.png", c2)
		require.NoError(t, err)
		assert.True(t, !updated.ModifiedAt.Before(updated.CreatedAt))

		require.NoError(t, posting.Remove(ctx, board.Id, msg.Id, c2))
		_, err = messages.Get(ctx, msg.Id)
		assert.True(t, errors.IsNotFound(err, "Message"))
		read, err = boards.Get(ctx, board.Id, c1)
		require.NoError(t, err)
		assert.Empty(t, read.Messages)
	})

	t.Run("ownerless message editable by any user", func(t *testing.T) {
		board, err := boards.Create(ctx, "Anon", domain.AccessPublic, c1)
		require.NoError(t, err)

		msg, err := posting.Post(ctx, board.Id, "anonymous thanks", "", domain.Anonymous())
		require.NoError(t, err)
		assert.Nil(t, msg.Owner)

		_, err = messages.Update(ctx, msg.Id, "edited by u3", "", c3)
		assert.NoError(t, err)
	})

	t.Run("post to missing board leaves unlinked message", func(t *testing.T) {
		missing := uuid.NewString()
		msg, err := posting.Post(ctx, missing, "lost", "", c1)
		var stepErr *errors.StepError
		require.ErrorAs(t, err, &stepErr)
		assert.Equal(t, service.StepLink, stepErr.Step)
		assert.True(t, errors.IsNotFound(err, "Board"))

		_, err = messages.Get(ctx, msg.Id)
		assert.NoError(t, err)
	})

	t.Run("unlink of message not on board", func(t *testing.T) {
		board, err := boards.Create(ctx, "Other", domain.AccessPublic, c1)
		require.NoError(t, err)

		err = boards.DeleteMessage(ctx, board.Id, uuid.NewString())
		assert.True(t, errors.IsNotFound(err, "Message"))

		read, err := boards.Get(ctx, board.Id, c1)
		require.NoError(t, err)
		assert.Equal(t, board.Members, read.Members)
		assert.Empty(t, read.Messages)
	})

	t.Run("listing", func(t *testing.T) {
		priv, err := boards.Create(ctx, "Listing private", domain.AccessPrivate, c3)
		require.NoError(t, err)
		link, err := boards.Create(ctx, "Listing link", domain.AccessLink, c3)
		require.NoError(t, err)

		anon, err := boards.List(ctx, domain.Anonymous())
		require.NoError(t, err)
		anonIds := lo.Map(anon, func(b domain.Board, _ int) domain.BoardId { return b.Id })
		assert.NotContains(t, anonIds, priv.Id)
		assert.NotContains(t, anonIds, link.Id)

		mine, err := boards.List(ctx, c3)
		require.NoError(t, err)
		mineIds := lo.Map(mine, func(b domain.Board, _ int) domain.BoardId { return b.Id })
		assert.Contains(t, mineIds, priv.Id)
		assert.Contains(t, mineIds, link.Id)
	})
}
