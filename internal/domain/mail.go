package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	Kerb     string `json:"kerb"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	Kerb       string `json:"kerb"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type SchedulePublishedMailData struct {
	Kerb   string   `json:"kerb"`
	Period string   `json:"period"`
	Duties []string `json:"duties"` // e.g. "2024-03-05 (lead)"
}
