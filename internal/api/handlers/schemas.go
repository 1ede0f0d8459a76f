package handlers

import (
	"fmt"
	"time"

	"github.com/pkazakov/accounts-service/internal/domain"
)

const dateLayout = "2006-01-02"

// Date is the YYYY-MM-DD wire format used for birthdays.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.Format(dateLayout))), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}
	t, err := time.Parse(dateLayout, s[1:len(s)-1])
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func dateFromTime(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{Time: *t}
}

func timeFromDate(d *Date) *time.Time {
	if d == nil {
		return nil
	}
	return &d.Time
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type CurrentUserResponse struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	OtherName *string `json:"other_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Birthday  *Date   `json:"birthday"`
	IsAdmin   bool    `json:"is_admin"`
}

func newCurrentUserResponse(u *domain.User) CurrentUserResponse {
	return CurrentUserResponse{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		OtherName: u.OtherName,
		Email:     u.Email,
		Phone:     u.Phone,
		Birthday:  dateFromTime(u.Birthday),
		IsAdmin:   u.IsSuperuser(),
	}
}

// UpdateUserRequest is the self-service patch schema: absent or null fields
// are left untouched. Role and city are not exposed here.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	OtherName *string `json:"other_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Birthday  *Date   `json:"birthday"`
}

type UpdateUserResponse struct {
	ID        uint    `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	OtherName *string `json:"other_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Birthday  *Date   `json:"birthday"`
}

func newUpdateUserResponse(u *domain.User) UpdateUserResponse {
	return UpdateUserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		OtherName: u.OtherName,
		Email:     u.Email,
		Phone:     u.Phone,
		Birthday:  dateFromTime(u.Birthday),
	}
}

type UserListElement struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func newUserListElements(users []*domain.User) []UserListElement {
	elements := make([]UserListElement, 0, len(users))
	for _, u := range users {
		elements = append(elements, UserListElement{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		})
	}
	return elements
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

type UsersListMeta struct {
	Pagination Pagination `json:"pagination"`
}

type UsersListResponse struct {
	Data []UserListElement `json:"data"`
	Meta UsersListMeta     `json:"meta"`
}

type CityHintMeta struct {
	City []domain.CityHint `json:"city"`
}

type PrivateUsersListMeta struct {
	Pagination Pagination   `json:"pagination"`
	Hint       CityHintMeta `json:"hint"`
}

type PrivateUsersListResponse struct {
	Data []UserListElement    `json:"data"`
	Meta PrivateUsersListMeta `json:"meta"`
}

type PrivateCreateUserRequest struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	OtherName      *string `json:"other_name"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone"`
	Birthday       *Date   `json:"birthday"`
	City           *uint   `json:"city"`
	AdditionalInfo *string `json:"additional_info"`
	IsAdmin        bool    `json:"is_admin"`
	Password       string  `json:"password"`
}

// PrivateUpdateUserRequest is the privileged patch schema: the self-service
// fields plus city, additional info and the admin flag.
type PrivateUpdateUserRequest struct {
	UpdateUserRequest
	City           *uint   `json:"city"`
	AdditionalInfo *string `json:"additional_info"`
	IsAdmin        *bool   `json:"is_admin"`
}

type PrivateDetailUserResponse struct {
	ID             uint    `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	OtherName      *string `json:"other_name"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone"`
	Birthday       *Date   `json:"birthday"`
	City           *uint   `json:"city"`
	AdditionalInfo *string `json:"additional_info"`
	IsAdmin        bool    `json:"is_admin"`
}

func newPrivateDetailUserResponse(u *domain.User) PrivateDetailUserResponse {
	return PrivateDetailUserResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		OtherName:      u.OtherName,
		Email:          u.Email,
		Phone:          u.Phone,
		Birthday:       dateFromTime(u.Birthday),
		City:           u.CityID,
		AdditionalInfo: u.AdditionalInfo,
		IsAdmin:        u.IsSuperuser(),
	}
}
