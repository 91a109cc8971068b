package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bloglist/blog-api/internal/core/domain"
)

var sampleBlogs = []*domain.Blog{
	{Title: "React patterns", Author: "Michael Chan", Likes: 7},
	{Title: "Go To Statement Considered Harmful", Author: "Edsger W. Dijkstra", Likes: 5},
	{Title: "Canonical string reduction", Author: "Edsger W. Dijkstra", Likes: 12},
	{Title: "First class tests", Author: "Robert C. Martin", Likes: 10},
	{Title: "TDD harms architecture", Author: "Robert C. Martin", Likes: 0},
	{Title: "Type wars", Author: "Robert C. Martin", Likes: 2},
}

func TestTotalLikes(t *testing.T) {
	tests := []struct {
		name  string
		blogs []*domain.Blog
		want  int
	}{
		{name: "empty list", blogs: nil, want: 0},
		{name: "single blog", blogs: sampleBlogs[:1], want: 7},
		{name: "two blogs", blogs: []*domain.Blog{{Likes: 5}, {Likes: 3}}, want: 8},
		{name: "bigger list", blogs: sampleBlogs, want: 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalLikes(tt.blogs))
		})
	}
}

func TestFavoriteBlog_Empty(t *testing.T) {
	_, ok := FavoriteBlog([]*domain.Blog{})
	assert.False(t, ok)
}

func TestFavoriteBlog_PicksMostLiked(t *testing.T) {
	fav, ok := FavoriteBlog(sampleBlogs)
	assert.True(t, ok)
	assert.Equal(t, Favorite{
		Title:  "Canonical string reduction",
		Author: "Edsger W. Dijkstra",
		Likes:  12,
	}, fav)
}

func TestFavoriteBlog_TieKeepsFirst(t *testing.T) {
	blogs := []*domain.Blog{
		{Title: "a", Likes: 2},
		{Title: "b", Likes: 9},
		{Title: "c", Likes: 9},
	}

	fav, ok := FavoriteBlog(blogs)
	assert.True(t, ok)
	assert.Equal(t, "b", fav.Title)
	assert.Equal(t, 9, fav.Likes)
}
