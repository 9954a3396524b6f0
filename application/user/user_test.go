package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	appuser "github.com/farhanmaulana/clinic-orders/application/user"
	"github.com/farhanmaulana/clinic-orders/cmd/config"
	"github.com/farhanmaulana/clinic-orders/constant"
	redismocks "github.com/farhanmaulana/clinic-orders/mocks/repository/redis"
	usermocks "github.com/farhanmaulana/clinic-orders/mocks/repository/user"
	"github.com/farhanmaulana/clinic-orders/model"
	cerr "github.com/farhanmaulana/clinic-orders/utils/errors"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret",
			JWTExpiration:  time.Hour,
			SessionExpTime: time.Hour,
		},
	}
}

func TestUserApp_Login(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	t.Run("success: valid credentials", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		redisRepo := redismocks.NewRedisRepository(t)

		userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "rep@clinic.test"}).Return(&model.UserEntity{
			ID: 1, Name: "Rep", Email: "rep@clinic.test", Role: "representative", PasswordHash: string(hash),
		}, nil).Once()
		redisRepo.On("SetSession", mock.Anything, mock.Anything, uint64(1), time.Hour).Return(nil).Once()

		app := appuser.NewUserApp(testConfig(), userRepo, redisRepo)
		got, err := app.Login(context.Background(), &model.LoginRequest{Email: "rep@clinic.test", Password: "password123"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if got.Token == "" {
			t.Fatal("Login() token should not be empty")
		}
	})

	t.Run("error: unknown email", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		redisRepo := redismocks.NewRedisRepository(t)

		userRepo.On("Get", mock.Anything, mock.Anything).Return(nil, nil).Once()

		app := appuser.NewUserApp(testConfig(), userRepo, redisRepo)
		_, err := app.Login(context.Background(), &model.LoginRequest{Email: "nobody@clinic.test", Password: "x"})
		if err == nil {
			t.Fatal("Login() expected error")
		}
		var ce cerr.CustomError
		if !errors.As(err, &ce) {
			t.Fatalf("error type = %T, want CustomError", err)
		}
		if ce.ErrorCode() != constant.ErrorTypeCode[constant.ErrNotFound] {
			t.Fatalf("error code = %s, want not found", ce.ErrorCode())
		}
	})

	t.Run("error: wrong password", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		redisRepo := redismocks.NewRedisRepository(t)

		userRepo.On("Get", mock.Anything, mock.Anything).Return(&model.UserEntity{
			ID: 1, Email: "rep@clinic.test", PasswordHash: string(hash),
		}, nil).Once()

		app := appuser.NewUserApp(testConfig(), userRepo, redisRepo)
		_, err := app.Login(context.Background(), &model.LoginRequest{Email: "rep@clinic.test", Password: "wrong"})
		if err == nil {
			t.Fatal("Login() expected error")
		}
		var ce cerr.CustomError
		if !errors.As(err, &ce) {
			t.Fatalf("error type = %T, want CustomError", err)
		}
		if ce.ErrorCode() != constant.ErrorTypeCode[constant.ErrInvalidPassword] {
			t.Fatalf("error code = %s, want invalid password", ce.ErrorCode())
		}
	})
}

func TestUserApp_ValidateToken(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	t.Run("success: token matches session", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		redisRepo := redismocks.NewRedisRepository(t)

		userRepo.On("Get", mock.Anything, mock.Anything).Return(&model.UserEntity{
			ID: 1, Email: "rep@clinic.test", PasswordHash: string(hash),
		}, nil).Once()
		redisRepo.On("SetSession", mock.Anything, mock.Anything, uint64(1), time.Hour).Return(nil).Once()
		redisRepo.On("GetSession", mock.Anything, mock.Anything).Return(uint64(1), nil).Once()

		app := appuser.NewUserApp(testConfig(), userRepo, redisRepo)
		res, err := app.Login(context.Background(), &model.LoginRequest{Email: "rep@clinic.test", Password: "password123"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		userID, err := app.ValidateToken(context.Background(), res.Token)
		if err != nil {
			t.Fatalf("ValidateToken() error = %v", err)
		}
		if userID != 1 {
			t.Fatalf("ValidateToken() userID = %d, want 1", userID)
		}
	})

	t.Run("error: garbage token", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		redisRepo := redismocks.NewRedisRepository(t)

		app := appuser.NewUserApp(testConfig(), userRepo, redisRepo)
		if _, err := app.ValidateToken(context.Background(), "not-a-token"); err == nil {
			t.Fatal("ValidateToken() expected error")
		}
	})

	t.Run("error: session expired in redis", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		redisRepo := redismocks.NewRedisRepository(t)

		userRepo.On("Get", mock.Anything, mock.Anything).Return(&model.UserEntity{
			ID: 1, Email: "rep@clinic.test", PasswordHash: string(hash),
		}, nil).Once()
		redisRepo.On("SetSession", mock.Anything, mock.Anything, uint64(1), time.Hour).Return(nil).Once()
		redisRepo.On("GetSession", mock.Anything, mock.Anything).Return(uint64(0), errors.New("redis: nil")).Once()

		app := appuser.NewUserApp(testConfig(), userRepo, redisRepo)
		res, err := app.Login(context.Background(), &model.LoginRequest{Email: "rep@clinic.test", Password: "password123"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		if _, err := app.ValidateToken(context.Background(), res.Token); err == nil {
			t.Fatal("ValidateToken() expected error")
		}
	})
}
