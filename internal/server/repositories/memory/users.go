package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/dmitrijs2005/blogly/internal/common"
	"github.com/dmitrijs2005/blogly/internal/server/models"
)

type userRepository struct {
	s    *Store
	data *tables
}

func (r *userRepository) List(context.Context) ([]*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*models.User, 0, len(r.data.users))
	for _, u := range r.data.users {
		u := u
		result = append(result, &u)
	}
	slices.SortFunc(result, func(a, b *models.User) int {
		return cmp.Or(
			cmp.Compare(a.LastName, b.LastName),
			cmp.Compare(a.FirstName, b.FirstName),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return result, nil
}

func (r *userRepository) Get(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.data.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

// checkColumns mirrors the CHECK and VARCHAR constraints of the users table.
func checkColumns(user *models.User) error {
	if user.FirstName == "" || user.LastName == "" {
		return fmt.Errorf("db error: users name columns must not be empty")
	}
	if utf8.RuneCountInString(user.FirstName) > models.MaxNameLength ||
		utf8.RuneCountInString(user.LastName) > models.MaxNameLength ||
		utf8.RuneCountInString(user.ImageURL) > models.MaxImageURLLength {
		return fmt.Errorf("db error: value too long for users column")
	}
	return nil
}

func (r *userRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	if err := checkColumns(user); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextUserID++
	user.ID = r.s.nextUserID
	r.data.users[user.ID] = *user
	return user, nil
}

func (r *userRepository) Update(_ context.Context, user *models.User) error {
	if err := checkColumns(user); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.data.users[user.ID]; !ok {
		return common.ErrorNotFound
	}
	r.data.users[user.ID] = *user
	return nil
}

func (r *userRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.data.users[id]; !ok {
		return common.ErrorNotFound
	}
	for _, p := range r.data.posts {
		if p.UserID == id {
			return foreignKeyError("user", id)
		}
	}
	delete(r.data.users, id)
	return nil
}
