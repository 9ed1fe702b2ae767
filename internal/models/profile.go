package models

// Profile is the public profile of an authenticated user.
type Profile struct {
	ID                    string  `json:"id"`
	FullName              *string `json:"full_name,omitempty"`
	Email                 *string `json:"email,omitempty"`
	Phone                 *string `json:"phone,omitempty"`
	NotificationsEmail    bool    `json:"notifications_email"`
	NotificationsWhatsApp bool    `json:"notifications_whatsapp"`
}

// CanReceiveEmail reports whether the profile opted in and has an address.
func (p Profile) CanReceiveEmail() bool {
	return p.NotificationsEmail && p.Email != nil && *p.Email != ""
}

// DisplayName falls back to the email address and then to a generic greeting.
func (p Profile) DisplayName() string {
	if p.FullName != nil && *p.FullName != "" {
		return *p.FullName
	}
	if p.Email != nil && *p.Email != "" {
		return *p.Email
	}
	return "there"
}

type NotificationSettings struct {
	NotificationsEmail    bool `json:"notifications_email"`
	NotificationsWhatsApp bool `json:"notifications_whatsapp"`
}
