package mapper

import (
	"mailgate/backend/internal/codec"
	"mailgate/backend/internal/domain"
	"mailgate/backend/internal/ews"
	"mailgate/backend/internal/extract"
)

// User 把一次目录解析结果映射为 User 实体。
//
// 上级与下属一律是弱引用：只带链接与显示名，绝不展开成完整
// 实体，避免沿目录图无限递归。
func (m *Mapper) User(res *ews.Resolution) any {
	return m.contain("user", func() any {
		if res == nil || res.Contact == nil {
			panic("目录解析结果缺少联系人详情")
		}
		bag := res.Contact.Bag
		displayName := extract.AsString(extract.Safely(bag, "DisplayName"))

		u := &domain.User{
			Self: codec.UserLink(displayName, res.Mailbox.Address),
			Name: &domain.UserName{
				First: extract.AsString(extract.Safely(bag, "GivenName")),
				Last:  extract.AsString(extract.Safely(bag, "Surname")),
				Full:  displayName,
			},
			Company:   extract.AsString(extract.Safely(bag, "CompanyName")),
			Phones:    stringEntries(extract.Safely(bag, "PhoneNumbers")),
			Addresses: addressEntries(extract.Safely(bag, "PhysicalAddresses")),
			Email:     res.Mailbox.Address,
			Title:     extract.AsString(extract.Safely(bag, "JobTitle")),
			Department: &domain.Department{
				Name:     extract.AsString(extract.Safely(bag, "Department")),
				Location: extract.AsString(extract.Safely(bag, "OfficeLocation")),
			},
		}

		if manager := extract.AsString(extract.Safely(bag, "Manager")); manager != "" {
			u.Manager = &domain.Manager{
				Ref:  codec.UserLink(manager, ""),
				Name: &domain.UserName{Full: manager},
			}
			if mb := extract.AsMailbox(extract.Safely(bag, "ManagerMailbox")); mb != nil {
				u.Manager.Email = mb.Address
			}
		}

		if photo := extract.AsString(extract.Safely(bag, "Photo")); photo != "" {
			u.Photo = "data:image/jpg;base64," + photo
		}

		u.Employees = []domain.Reference{}
		for _, report := range extract.AsMailboxes(extract.Safely(bag, "DirectReports")) {
			if report == nil {
				continue
			}
			u.Employees = append(u.Employees, domain.Reference{Ref: codec.UserLink(report.Name, "")})
		}

		// 提升首选单值：手机号与家庭/公司地址。
		if mobile, ok := u.Phones["MobilePhone"]; ok {
			u.Phone = mobile
		}
		if home, ok := u.Addresses["Home"]; ok {
			u.Address = &home
		} else if business, ok := u.Addresses["Business"]; ok {
			u.Address = &business
		}
		return u
	})
}

// Contact 把原始通讯录条目映射为 Contact 实体。
func (m *Mapper) Contact(item *ews.Item) any {
	return m.contain("contact", func() any {
		bag := item.Bag
		id := mustID(bag, "Id")

		c := &domain.Contact{
			Self:  "/contacts/" + mustEncode(id.UniqueID),
			Href:  extract.AsString(extract.Safely(bag, "WebClientReadFormQueryString")),
			Phone: stringEntries(extract.Safely(bag, "PhoneNumbers")),
			Size:  extract.AsInt(extract.Safely(bag, "Size")),
		}
		if cn, ok := extract.Safely(bag, "CompleteName").(*ews.CompleteName); ok && cn != nil {
			c.Name = domain.ContactName{
				First:     cn.GivenName,
				Middle:    cn.MiddleName,
				Last:      cn.Surname,
				Preferred: cn.Nickname,
			}
		}
		return c
	})
}

// stringEntries 把字典属性收敛为字符串表，缺失时返回空表。
func stringEntries(v any) map[string]string {
	if entries, ok := v.(map[string]string); ok && entries != nil {
		return entries
	}
	return map[string]string{}
}

// addressEntries 把地址字典属性转成实体地址表。
func addressEntries(v any) map[string]domain.Address {
	out := map[string]domain.Address{}
	entries, ok := v.(map[string]*ews.PhysicalAddress)
	if !ok {
		return out
	}
	for key, addr := range entries {
		if addr == nil {
			continue
		}
		out[key] = domain.Address{
			Street:  addr.Street,
			City:    addr.City,
			State:   addr.State,
			Country: addr.CountryOrRegion,
			Postal:  addr.PostalCode,
		}
	}
	return out
}
