package auth

import "github.com/bloglist/blog-api/internal/core/domain"

// AuthorizeMutation allows a change to blog only when user created it.
// There are no roles or shared ownership; identity equality is the whole rule.
func AuthorizeMutation(user *domain.User, blog *domain.Blog) error {
	if user == nil || blog == nil || user.ID == "" || user.ID != blog.CreatorID {
		return domain.ErrForbidden
	}
	return nil
}
