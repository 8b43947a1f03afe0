package mail

type InvitationEmailData struct {
	Name       string
	Paragraphs []string
	ConfirmURL string
}

type InterestAlertData struct {
	SalespersonName string
	LeadName        string
	LeadEmail       string
}
