package users

import (
	"github.com/tasknest/TN-Backend/internal/db"
	"github.com/tasknest/TN-Backend/internal/utils"
)

// UserInfo satisfies middleware.UserFetcher against the shared database handle.
type UserInfo struct{}

func (ui UserInfo) FindUserByEmail(email string) (utils.UserData, error) {
	var user User

	err := db.DB.First(&user, "email = ?", email).Error
	if err != nil {
		return utils.UserData{}, err
	}

	return utils.UserData{
		UserID: user.UserID,
		Email:  user.Email,
		Name:   user.Name,
	}, nil
}
