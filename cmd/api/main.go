package main

import (
	"strconv"
	"time"

	"online-food/internal/config"
	"online-food/internal/domain/model"
	"online-food/internal/handler"
	"online-food/internal/infra/cache"
	"online-food/internal/infra/db"
	infraRepo "online-food/internal/infra/repository"
	"online-food/internal/server"
	"online-food/internal/usecase"
	"online-food/internal/validator"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 15 * time.Minute,
	}
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envが無ければ環境変数をそのまま使う
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Restaurant{},
		&model.MenuItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	restaurantRepo := infraRepo.NewRestaurantGormRepository(gormDB)
	menuRepo := infraRepo.NewMenuItemGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//redisは設定がある時だけ
	var menuCache usecase.MenuItemCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		menuCache = cache.NewMenuCache(rdb, 5*time.Minute)
	}

	//usecaseに渡す部品
	clock := &realClock{}
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()
	issuer := newJWTIssuer(cfg.JWTSecret)
	authValidator := validator.NewAuthValidator()

	//Usecase生成
	userUC := usecase.NewUserUsecase(userRepo, authValidator, hasher, verifier, issuer, clock)
	restaurantUC := usecase.NewRestaurantUsecase(restaurantRepo)
	menuUC := usecase.NewMenuItemUsecase(menuRepo, restaurantRepo, menuCache)
	orderUC := usecase.NewOrderUsecase(txm)

	//Handler生成
	userH := handler.NewUserHandler(userUC)
	restaurantH := handler.NewRestaurantHandler(restaurantUC)
	menuH := handler.NewMenuItemHandler(menuUC)
	orderH := handler.NewOrderHandler(orderUC)

	//Server起動
	e := server.New(cfg)
	server.RegisterRoutes(e, userH, restaurantH, menuH, orderH)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := e.Start(addr); err != nil {
		panic(err)
	}
}
