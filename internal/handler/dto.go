package handler

import (
	"time"

	"github.com/msomdec/items-api/internal/domain"
)

// timeLayout renders UTC timestamps with millisecond precision and a Z suffix.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// UserDTO is the public projection of a user. The password hash never leaves
// the server.
type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// ItemDTO is the public projection of an item.
type ItemDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	Owner     string `json:"owner"`
}

func toItemDTO(it *domain.Item) ItemDTO {
	return ItemDTO{
		ID:        it.ID,
		Name:      it.Name,
		CreatedAt: formatTime(it.CreatedAt),
		UpdatedAt: formatTime(it.UpdatedAt),
		Owner:     it.Owner,
	}
}

func toItemDTOs(items []domain.Item) []ItemDTO {
	dtos := make([]ItemDTO, len(items))
	for i := range items {
		dtos[i] = toItemDTO(&items[i])
	}
	return dtos
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
