package domain

import "time"

// Claims 表示账号的 OpenID 风格声明集合。
type Claims struct {
	Sub        string `json:"sub"`
	Name       string `json:"name,omitempty"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	Email      string `json:"email,omitempty"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone_number,omitempty"`
	Picture    string `json:"picture,omitempty"`
	UpdatedAt  int64  `json:"updated_at,omitempty"`
}

// Account 表示一个已通过提供商认证的账号主体。
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Claims    Claims    `json:"claims"`
	CreatedAt time.Time `json:"created_at"`
}
