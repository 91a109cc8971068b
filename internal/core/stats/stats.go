// Package stats computes derived figures over already-fetched blog
// collections. Every function is pure.
package stats

import "github.com/bloglist/blog-api/internal/core/domain"

// Favorite is the projection returned for the most liked blog.
type Favorite struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// TotalLikes sums the likes of every blog. An empty slice yields 0.
func TotalLikes(blogs []*domain.Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the first blog with the highest like count.
// ok is false when blogs is empty.
func FavoriteBlog(blogs []*domain.Blog) (fav Favorite, ok bool) {
	if len(blogs) == 0 {
		return Favorite{}, false
	}

	best := blogs[0]
	for _, b := range blogs[1:] {
		// strict comparison keeps the earliest blog on ties
		if b.Likes > best.Likes {
			best = b
		}
	}
	return Favorite{Title: best.Title, Author: best.Author, Likes: best.Likes}, true
}
