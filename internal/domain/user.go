package domain

// UserName 表示用户姓名的三个投影。
type UserName struct {
	First string `json:"first,omitempty"`
	Last  string `json:"last,omitempty"`
	Full  string `json:"full,omitempty"`
}

// Department 表示用户所属部门。
type Department struct {
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
}

// Address 表示一条实体地址。
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Postal  string `json:"postal,omitempty"`
}

// Manager 表示上级的弱引用：链接、显示名、邮箱，绝不展开。
type Manager struct {
	Ref   string    `json:"$ref,omitempty"`
	Name  *UserName `json:"name,omitempty"`
	Email string    `json:"email,omitempty"`
}

// User 表示目录中的一个用户实体。
//
// Phone / Address 是从对应集合中提升出来的首选单值；
// Manager 与 Employees 只是引用，不会展开为完整实体。
type User struct {
	Self       string             `json:"$self"`
	Name       *UserName          `json:"name,omitempty"`
	Company    string             `json:"company,omitempty"`
	Phones     map[string]string  `json:"phones"`
	Addresses  map[string]Address `json:"addresses"`
	Email      string             `json:"email,omitempty"`
	Title      string             `json:"title,omitempty"`
	Department *Department        `json:"department,omitempty"`
	Manager    *Manager           `json:"manager,omitempty"`
	Photo      string             `json:"photo,omitempty"`
	Employees  []Reference        `json:"employees"`
	Phone      string             `json:"phone,omitempty"`
	Address    *Address           `json:"address,omitempty"`
}

// ContactName 表示通讯录联系人的姓名拆分。
type ContactName struct {
	First     string `json:"first,omitempty"`
	Middle    string `json:"middle,omitempty"`
	Last      string `json:"last,omitempty"`
	Preferred string `json:"preferred,omitempty"`
}

// Contact 表示个人通讯录中的联系人。
type Contact struct {
	Self  string            `json:"$self"`
	Href  string            `json:"$href,omitempty"`
	Name  ContactName       `json:"name"`
	Phone map[string]string `json:"phone"`
	Size  int               `json:"size,omitempty"`
}
