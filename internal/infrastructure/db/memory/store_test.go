package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloglist/blog-api/internal/core/domain"
	"github.com/bloglist/blog-api/internal/core/ports"
)

var (
	_ ports.UserRepository = (*UserRepository)(nil)
	_ ports.BlogRepository = (*BlogRepository)(nil)
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	created, err := users.Create(ctx, &domain.User{Username: "root", Name: "Superuser"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	byID, err := users.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "root", byID.Username)

	byName, err := users.FindByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = users.Create(ctx, &domain.User{Username: "root"})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	_, err = users.FindByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = users.FindByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, domain.ErrMalformedID)
}

func TestBlogRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := New()
	users, blogs := store.Users(), store.Blogs()

	root, err := users.Create(ctx, &domain.User{Username: "root", Name: "Superuser"})
	require.NoError(t, err)

	first, err := blogs.Create(ctx, &domain.Blog{Title: "a", URL: "u", CreatorID: root.ID})
	require.NoError(t, err)
	require.NotNil(t, first.Creator)
	assert.Equal(t, "root", first.Creator.Username)

	_, err = blogs.Create(ctx, &domain.Blog{Title: "b", URL: "u", CreatorID: root.ID})
	require.NoError(t, err)

	all, err := blogs.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Title)

	owned, err := blogs.FindByCreator(ctx, root.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	updated, err := blogs.UpdateLikes(ctx, first.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Likes)

	require.NoError(t, blogs.Delete(ctx, first.ID))
	assert.Equal(t, 1, blogs.Count())
	assert.ErrorIs(t, blogs.Delete(ctx, first.ID), domain.ErrBlogNotFound)

	_, err = blogs.FindByID(ctx, "123")
	assert.ErrorIs(t, err, domain.ErrMalformedID)
}

func TestStore_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	store := New()
	root, err := store.Users().Create(ctx, &domain.User{Username: "root"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Blogs().Create(ctx, &domain.Blog{Title: "t", URL: "u", CreatorID: root.ID})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, store.Blogs().Count())
}
