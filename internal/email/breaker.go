package email

import (
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	"itijobs_backend/internal/logger"
)

// ErrMailerUnavailable возвращается пока breaker разомкнут
var ErrMailerUnavailable = errors.New("mail relay unavailable")

type BreakerSettings struct {
	Name        string
	MinRequests uint32
	OpenTimeout time.Duration
}

// NewCircuitBreaker размыкается, когда из минимум MinRequests отправок
// неудачны 60% и больше
func NewCircuitBreaker(s BreakerSettings) *gobreaker.CircuitBreaker[struct{}] {
	minRequests := s.MinRequests
	if minRequests == 0 {
		minRequests = 3
	}

	var st gobreaker.Settings
	st.Name = s.Name
	st.Timeout = s.OpenTimeout
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= minRequests && failureRatio >= 0.6
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		logger.Warn("Mail circuit breaker state changed",
			"breaker", name, "from", from.String(), "to", to.String())
	}

	return gobreaker.NewCircuitBreaker[struct{}](st)
}

// BreakerProvider пропускает отправку через circuit breaker
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerProvider(next Provider, cb *gobreaker.CircuitBreaker[struct{}]) *BreakerProvider {
	return &BreakerProvider{next: next, cb: cb}
}

func (p *BreakerProvider) Send(email *Email) error {
	return p.execute(func() error { return p.next.Send(email) })
}

func (p *BreakerProvider) SendWithTemplate(templateName string, data TemplateData, email *Email) error {
	return p.execute(func() error { return p.next.SendWithTemplate(templateName, data, email) })
}

func (p *BreakerProvider) Validate() error { return p.next.Validate() }
func (p *BreakerProvider) Close() error    { return p.next.Close() }

func (p *BreakerProvider) execute(send func() error) error {
	_, err := p.cb.Execute(func() (struct{}, error) {
		return struct{}{}, send()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return errors.Join(ErrMailerUnavailable, err)
	}
	return err
}
