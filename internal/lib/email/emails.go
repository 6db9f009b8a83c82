package email

// SendWelcomeEmail sends the signup welcome email to a new user.
func (c *Client) SendWelcomeEmail(to, firstName string) error {
	data := map[string]string{
		"UserFirstName": firstName,
	}

	return c.SendEmail(
		to,
		"Welcome to Jobly!",
		TemplateWelcome,
		data,
	)
}
