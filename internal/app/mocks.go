package app

import (
	"itijobs_backend/internal/email"
	"itijobs_backend/internal/logger"
)

// MockEmailProvider используется для локальной разработки, когда SMTP не настроен.
// Письма не отправляются, только логируются.
type MockEmailProvider struct {
	renderer email.TemplateRenderer
}

func (m *MockEmailProvider) Send(msg *email.Email) error {
	logger.Info("[mock email] message not sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (m *MockEmailProvider) SendWithTemplate(templateName string, data email.TemplateData, msg *email.Email) error {
	if m.renderer != nil {
		body, err := m.renderer.Render(templateName, data)
		if err != nil {
			return err
		}
		msg.HTMLBody = body
	}
	logger.Debug("[mock email] rendered template", "template", templateName)
	return m.Send(msg)
}

func (m *MockEmailProvider) Validate() error { return nil }
func (m *MockEmailProvider) Close() error    { return nil }
