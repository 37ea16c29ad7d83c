package model

// User 使用者模型。密碼沿 users 資料檔的格式以明文存放
type User struct {
	ID       int
	Username string
	Password string
}

func (u *User) Clone() *User {
	clone := *u
	return &clone
}

// UserResponse 使用者響應，不回傳密碼
type UserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}
