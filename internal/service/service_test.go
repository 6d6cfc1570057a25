package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"winetour-be/internal/entity"
	"winetour-be/internal/pkg/logger"
	"winetour-be/internal/repository/memory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const testTopic = "trip.confirmed"

// nopLogger swallows everything; service tests assert on behavior, not logs.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}

// recordingMailer captures outgoing mail instead of dialing SMTP.
type recordingMailer struct {
	mu          sync.Mutex
	otps        map[string]string
	resetTokens map[string]string
	itineraries map[string][]string // keyed by trip title
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{
		otps:        make(map[string]string),
		resetTokens: make(map[string]string),
		itineraries: make(map[string][]string),
	}
}

func (m *recordingMailer) SendOTP(toEmail, otp string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.otps[toEmail] = otp
	return nil
}

func (m *recordingMailer) SendResetToken(toEmail, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetTokens[toEmail] = token
	return nil
}

func (m *recordingMailer) SendItinerary(toEmail, tripTitle string, lines []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.itineraries[tripTitle] = lines
	return nil
}

func (m *recordingMailer) itinerary(tripTitle string) ([]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines, ok := m.itineraries[tripTitle]
	return lines, ok
}

// fixture wires the full service layer onto the in-memory repositories. The
// NATS publisher is nil everywhere, matching a deploy without a broker.
type fixture struct {
	repos   *memory.Factory
	pubSub  *gochannel.GoChannel
	mailer  *recordingMailer
	trips   ITripService
	access  IAccessService
	auth    IAuthService
	catalog ICatalogService
	admin   IAdminService
	users   IUserService
	payment IPaymentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repos := memory.NewFactory()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	mail := newRecordingMailer()
	log := nopLogger{}

	publisher := NewPublisherService(testTopic, pubSub)
	accessService := NewAccessService(repos, nil, log)
	catalogService := NewCatalogService(repos)

	return &fixture{
		repos:   repos,
		pubSub:  pubSub,
		mailer:  mail,
		trips:   NewTripService(repos, publisher, nil, log),
		access:  accessService,
		auth:    NewAuthService(repos, mail, nil, log),
		catalog: catalogService,
		admin:   NewAdminService(repos, catalogService, log),
		users:   NewUserService(repos),
		payment: NewPaymentService(repos, accessService, nil, log),
	}
}

func (f *fixture) seedUser(t *testing.T, email string) *entity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:            uuid.New(),
		Email:         email,
		FullName:      "Test Taster",
		PasswordHash:  &hashStr,
		Role:          entity.UserRoleUser,
		Status:        entity.UserStatusActive,
		EmailVerified: true,
		CreatedAt:     time.Now(),
	}
	if err := f.repos.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (f *fixture) seedVineyard(t *testing.T, name, region string, offerNames ...string) *entity.Vineyard {
	t.Helper()

	vineyard := &entity.Vineyard{
		Id:        uuid.New(),
		Name:      name,
		Region:    region,
		Address:   "1 Cellar Lane",
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	for _, offerName := range offerNames {
		vineyard.Offers = append(vineyard.Offers, entity.VineyardOffer{
			Id:         uuid.New(),
			VineyardId: vineyard.Id,
			Name:       offerName,
			Price:      45,
			IsActive:   true,
			CreatedAt:  time.Now(),
		})
	}
	if err := f.repos.Vineyards.Create(context.Background(), vineyard); err != nil {
		t.Fatalf("seed vineyard: %v", err)
	}
	return vineyard
}

func (f *fixture) seedRestaurant(t *testing.T, name, region string) *entity.Restaurant {
	t.Helper()

	restaurant := &entity.Restaurant{
		Id:        uuid.New(),
		Name:      name,
		Region:    region,
		Address:   "2 Market Square",
		Cuisine:   "provencal",
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := f.repos.Restaurants.Create(context.Background(), restaurant); err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}
	return restaurant
}
