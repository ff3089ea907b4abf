package users

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tasknest/TN-Backend/internal/db"
	"github.com/tasknest/TN-Backend/internal/session"
	"github.com/tasknest/TN-Backend/internal/utils"
	"gorm.io/gorm"
)

// Requests carry the field as "username"; the stored column and all response
// payloads use "name". Older frontend variants that posted "name" are not
// supported.
type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// RegisterHandler creates a user if the email is unused and sets the identity
// cookie. The email pre-check gives the friendly error; the unique index on
// users.email settles concurrent registrations, and that violation maps to the
// same 400 so the caller can't tell which path rejected it.
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Email == "" || req.Username == "" {
		utils.Error(w, http.StatusBadRequest, "Email and username required")
		return
	}

	var existing User
	err := db.DB.First(&existing, "email = ?", req.Email).Error
	if err == nil {
		utils.Error(w, http.StatusBadRequest, "Email already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Register lookup failed:", err)
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := User{
		UserID: utils.GenerateUUID(),
		Email:  req.Email,
		Name:   req.Username,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			utils.Error(w, http.StatusBadRequest, "Email already exists")
			return
		}
		log.Println("Register create failed:", err)
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	session.Write(w, session.Claims{Email: user.Email, Name: user.Name})
	utils.JSON(w, http.StatusCreated, map[string]string{"message": "User created"})
}

// LoginHandler checks an email/username pair against the stored row. This is
// the original system's contract: the username is compared as plaintext in
// lieu of a password. Both failure modes collapse into one 401 message.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Email == "" || req.Username == "" {
		utils.Error(w, http.StatusBadRequest, "Email and username are required")
		return
	}

	var user User
	err := db.DB.First(&user, "email = ?", req.Email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && user.Name != req.Username) {
		utils.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		log.Println("Login lookup failed:", err)
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	session.Write(w, session.Claims{Email: user.Email, Name: user.Name})
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Login successful"})
}

type updateUsernameRequest struct {
	Username string `json:"username"`
}

// UpdateUsernameHandler renames the session user and refreshes the cookie so
// the client's claim stays consistent with the row it points at.
func UpdateUsernameHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req updateUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Username == "" {
		utils.Error(w, http.StatusBadRequest, "Username required")
		return
	}

	var user User
	if err := db.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := db.DB.Model(&user).Update("name", req.Username).Error; err != nil {
		log.Println("Username update failed:", err)
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	session.Write(w, session.Claims{Email: user.Email, Name: req.Username})
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Username updated"})
}

// isUniqueViolation reports whether err is a postgres unique-constraint
// failure (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
