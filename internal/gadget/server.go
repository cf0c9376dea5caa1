package gadget

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gadgetdb "github.com/nao1215/gadget-api/internal/gadget/db"
	"github.com/nao1215/gadget-api/pkg/middleware"
	_ "modernc.org/sqlite"
)

// Config はサーバーの起動設定。環境変数の読み取りはエントリポイントが行い、
// 署名シークレットを含むすべての値はここを経由して注入される。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string
	// DBPath はSQLiteデータベースのDSN。
	DBPath string
	// JWTSecret はJWT署名用の秘密鍵。空の場合は起動に失敗する。
	JWTSecret string
	// FrontendURL はCORSで許可するフロントエンドのオリジン。
	FrontendURL string
}

// Server はガジェット在庫APIのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// queries はsqlcが生成したクエリ実行オブジェクト。
	queries *gadgetdb.Queries
	// db はSQLiteデータベース接続。
	db *sql.DB
	// jwtSecret はJWT署名用の秘密鍵。
	jwtSecret string
}

// NewServer は新しいガジェットサーバーを生成する。
// SQLiteデータベースの初期化とスキーマ作成を行う。
func NewServer(cfg Config) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT署名シークレットが設定されていない")
	}

	sqlDB, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	if err := initSchema(sqlDB); err != nil {
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	if cfg.FrontendURL != "" {
		router.Use(middleware.CORS([]string{cfg.FrontendURL}))
	}

	s := &Server{
		router:    router,
		port:      cfg.Port,
		queries:   gadgetdb.New(sqlDB),
		db:        sqlDB,
		jwtSecret: cfg.JWTSecret,
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		// 認証エンドポイント（認証不要）
		auth := api.Group("/auth")
		{
			// ユーザー登録
			auth.POST("/register", s.handleRegister())
			// ログイン
			auth.POST("/login", s.handleLogin())
		}

		// ガジェットエンドポイント（要Bearerトークン）
		gadgets := api.Group("/gadgets")
		gadgets.Use(middleware.JWTAuth(s.jwtSecret, s.userExists))
		{
			// ガジェット一覧取得
			gadgets.GET("", s.handleList())
			// ガジェット作成
			gadgets.POST("", s.handleCreate())
			// ガジェット更新
			gadgets.PATCH("/:id", s.handleUpdate())
			// ガジェット退役（論理削除）
			gadgets.DELETE("/:id", s.handleDecommission())
			// 自爆シーケンス起動
			gadgets.POST("/:id/self-destruct", s.handleSelfDestruct())
		}
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "API is running"})
	})

	// 未定義ルート
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Can't find %s on this server!", c.Request.URL.Path),
		})
	})
}

// userExists はトークンに紐づくユーザーが現在も存在するかを確認する。
// 認証ミドルウェアから呼び出される。
func (s *Server) userExists(ctx context.Context, userID string) (bool, error) {
	count, err := s.queries.CountUsersByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// registerRequest はユーザー登録リクエストのJSON構造。
type registerRequest struct {
	// Username はログイン名。
	Username string `json:"username"`
	// Password は平文パスワード。
	Password string `json:"password"`
}

// loginRequest はログインリクエストのJSON構造。
type loginRequest struct {
	// Username はログイン名。
	Username string `json:"username"`
	// Password は平文パスワード。
	Password string `json:"password"`
}

// createGadgetRequest はガジェット作成リクエストのJSON構造。ボディは省略可能。
type createGadgetRequest struct {
	// Status は初期ステータス。省略時はAvailable。
	Status string `json:"status"`
}

// updateGadgetRequest はガジェット更新リクエストのJSON構造。
// ポインタにすることでJSONボディに含まれるフィールドのみを上書きする。
type updateGadgetRequest struct {
	// Name は新しいコードネーム。
	Name *string `json:"name"`
	// Status は新しいステータス。
	Status *string `json:"status"`
}

// userResponse はユーザーのJSONレスポンス構造。
type userResponse struct {
	// ID はユーザーの一意識別子。
	ID string `json:"id"`
	// Username はログイン名。
	Username string `json:"username"`
}

// gadgetResponse はガジェットのJSONレスポンス構造。
type gadgetResponse struct {
	// ID はガジェットの一意識別子。
	ID string `json:"id"`
	// Name はコードネーム。
	Name string `json:"name"`
	// Status は現在のステータス。
	Status string `json:"status"`
	// DecommissionedAt は退役日時。未退役ならnull。
	DecommissionedAt *string `json:"decommissionedAt"`
	// SelfDestructAt は自爆日時。未自爆ならnull。
	SelfDestructAt *string `json:"selfDestructAt"`
	// CreatedAt は作成日時。
	CreatedAt string `json:"createdAt"`
	// UpdatedAt は更新日時。
	UpdatedAt string `json:"updatedAt"`
}

// gadgetWithProbabilityResponse は一覧取得時のガジェットレスポンス構造。
// 任務成功確率はリクエストごとに再生成され、永続化されない。
type gadgetWithProbabilityResponse struct {
	gadgetResponse
	// MissionSuccessProbability は任務成功確率（[0, 100)）。
	MissionSuccessProbability int `json:"missionSuccessProbability"`
}

// timeFormat はレスポンスの日時フォーマット。
const timeFormat = "2006-01-02T15:04:05Z"

// formatNullTime はNULL許容の日時をJSONレスポンス用に変換する。
func formatNullTime(t sql.NullTime) *string {
	if !t.Valid {
		return nil
	}
	formatted := t.Time.Format(timeFormat)
	return &formatted
}

// toGadgetResponse はDB行をJSONレスポンスに変換する。
func toGadgetResponse(g gadgetdb.Gadget) gadgetResponse {
	return gadgetResponse{
		ID:               g.ID,
		Name:             g.Name,
		Status:           g.Status,
		DecommissionedAt: formatNullTime(g.DecommissionedAt),
		SelfDestructAt:   formatNullTime(g.SelfDestructAt),
		CreatedAt:        g.CreatedAt.Format(timeFormat),
		UpdatedAt:        g.UpdatedAt.Format(timeFormat),
	}
}

// bindJSON はリクエストボディをデコードする。ボディの省略は空リクエストとして扱う。
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// validateRegister は登録リクエストを検証し、失敗したルールのメッセージを集める。
func validateRegister(req registerRequest) []string {
	var messages []string
	if req.Username == "" {
		messages = append(messages, "Username is required")
	}
	if utf8.RuneCountInString(req.Username) < 3 {
		messages = append(messages, "Username must be at least 3 characters long")
	}
	if req.Password == "" {
		messages = append(messages, "Password is required")
	}
	if utf8.RuneCountInString(req.Password) < 6 {
		messages = append(messages, "Password must be at least 6 characters long")
	}
	return messages
}

// handleRegister はユーザー登録を処理するハンドラを返す。
// パスワードをハッシュ化してユーザーを作成し、JWTトークンを発行する。
func (s *Server) handleRegister() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := bindJSON(c, &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body"})
			return
		}

		if messages := validateRegister(req); len(messages) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": strings.Join(messages, ", ")})
			return
		}

		// ユーザー名の重複を確認する
		_, err := s.queries.GetUserByUsername(c.Request.Context(), req.Username)
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Username already exists"})
			return
		}
		if !errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
			log.Printf("ユーザー取得エラー: %v", err)
			return
		}

		passwordHash, err := hashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
			log.Printf("パスワードハッシュ化エラー: %v", err)
			return
		}

		userID := uuid.New().String()
		if err := s.queries.CreateUser(c.Request.Context(), gadgetdb.CreateUserParams{
			ID:           userID,
			Username:     req.Username,
			PasswordHash: passwordHash,
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
			log.Printf("ユーザー作成エラー: %v", err)
			return
		}

		token, err := middleware.GenerateJWT(s.jwtSecret, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
			log.Printf("トークン発行エラー: %v", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status": "success",
			"token":  token,
			"data": gin.H{
				"user": userResponse{ID: userID, Username: req.Username},
			},
		})
	}
}

// handleLogin はログインを処理するハンドラを返す。
// ユーザー不在とパスワード不一致は区別せず同一の401を返し、
// どちらが原因かを漏らさない。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := bindJSON(c, &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body"})
			return
		}

		var messages []string
		if req.Username == "" {
			messages = append(messages, "Username is required")
		}
		if req.Password == "" {
			messages = append(messages, "Password is required")
		}
		if len(messages) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": strings.Join(messages, ", ")})
			return
		}

		user, err := s.queries.GetUserByUsername(c.Request.Context(), req.Username)
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid username or password"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
			log.Printf("ユーザー取得エラー: %v", err)
			return
		}

		if !checkPassword(user.PasswordHash, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid username or password"})
			return
		}

		token, err := middleware.GenerateJWT(s.jwtSecret, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
			log.Printf("トークン発行エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"token":  token,
			"data": gin.H{
				"user": userResponse{ID: user.ID, Username: user.Username},
			},
		})
	}
}

// handleList はガジェット一覧取得を処理するハンドラを返す。
// statusクエリパラメータで1つのステータスに絞り込める。
// 各ガジェットには読み取りのたびに再生成される任務成功確率を付与する。
func (s *Server) handleList() gin.HandlerFunc {
	return func(c *gin.Context) {
		statusFilter := c.Query("status")
		if statusFilter != "" && !Status(statusFilter).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Invalid status: must be one of %s", statusListMessage()),
			})
			return
		}

		var gadgets []gadgetdb.Gadget
		var err error
		if statusFilter != "" {
			gadgets, err = s.queries.ListGadgetsByStatus(c.Request.Context(), statusFilter)
		} else {
			gadgets, err = s.queries.ListGadgets(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
			log.Printf("ガジェット一覧取得エラー: %v", err)
			return
		}

		responses := make([]gadgetWithProbabilityResponse, 0, len(gadgets))
		for _, g := range gadgets {
			responses = append(responses, gadgetWithProbabilityResponse{
				gadgetResponse:            toGadgetResponse(g),
				MissionSuccessProbability: missionSuccessProbability(),
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"results": len(responses),
			"data":    gin.H{"gadgets": responses},
		})
	}
}

// handleCreate はガジェット作成を処理するハンドラを返す。
// コードネームを自動生成し、ステータス省略時はAvailableで作成する。
func (s *Server) handleCreate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createGadgetRequest
		if err := bindJSON(c, &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body"})
			return
		}

		status := StatusAvailable
		if req.Status != "" {
			status = Status(req.Status)
			if !status.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{
					"status":  "error",
					"message": fmt.Sprintf("Invalid status: must be one of %s", statusListMessage()),
				})
				return
			}
		}

		gadgetID := uuid.New().String()
		if err := s.queries.CreateGadget(c.Request.Context(), gadgetdb.CreateGadgetParams{
			ID:     gadgetID,
			Name:   generateCodename(),
			Status: string(status),
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
			log.Printf("ガジェット作成エラー: %v", err)
			return
		}

		created, err := s.queries.GetGadgetByID(c.Request.Context(), gadgetID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
			log.Printf("ガジェット取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status": "success",
			"data":   gin.H{"gadget": toGadgetResponse(created)},
		})
	}
}

// handleUpdate はガジェット更新を処理するハンドラを返す。
// JSONボディに含まれるフィールドのみを上書きする。終端状態（Destroyed /
// Decommissioned）からのステータス変更は同一値の再設定を除いて拒否する。
func (s *Server) handleUpdate() gin.HandlerFunc {
	return func(c *gin.Context) {
		gadgetID := c.Param("id")
		g, err := s.queries.GetGadgetByID(c.Request.Context(), gadgetID)
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "No gadget found with that ID"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
			log.Printf("ガジェット取得エラー: %v", err)
			return
		}

		var req updateGadgetRequest
		if err := bindJSON(c, &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body"})
			return
		}

		name := g.Name
		if req.Name != nil {
			name = *req.Name
		}

		status := Status(g.Status)
		if req.Status != nil {
			next := Status(*req.Status)
			if !next.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{
					"status":  "error",
					"message": fmt.Sprintf("Invalid status: must be one of %s", statusListMessage()),
				})
				return
			}
			if !CanTransition(status, next) {
				c.JSON(http.StatusBadRequest, gin.H{
					"status":  "error",
					"message": fmt.Sprintf("Cannot change status of a %s gadget", g.Status),
				})
				return
			}
			status = next
		}

		if err := s.queries.UpdateGadget(c.Request.Context(), gadgetdb.UpdateGadgetParams{
			Name:   name,
			Status: string(status),
			ID:     gadgetID,
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
			log.Printf("ガジェット更新エラー: %v", err)
			return
		}

		updated, err := s.queries.GetGadgetByID(c.Request.Context(), gadgetID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
			log.Printf("ガジェット取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data":   gin.H{"gadget": toGadgetResponse(updated)},
		})
	}
}

// handleDecommission はガジェット退役（論理削除）を処理するハンドラを返す。
// 事前のステータスにかかわらずDecommissionedを強制し、退役日時を刻印する。
// 再実行しても結果は変わらず、日時が刻印し直されるだけ。
func (s *Server) handleDecommission() gin.HandlerFunc {
	return func(c *gin.Context) {
		gadgetID := c.Param("id")
		if _, err := s.queries.GetGadgetByID(c.Request.Context(), gadgetID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "No gadget found with that ID"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
			log.Printf("ガジェット取得エラー: %v", err)
			return
		}

		if err := s.queries.DecommissionGadget(c.Request.Context(), gadgetID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
			log.Printf("ガジェット退役エラー: %v", err)
			return
		}

		decommissioned, err := s.queries.GetGadgetByID(c.Request.Context(), gadgetID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
			log.Printf("ガジェット取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data":   gin.H{"gadget": toGadgetResponse(decommissioned)},
		})
	}
}

// handleSelfDestruct は自爆シーケンス起動を処理するハンドラを返す。
// 6桁の確認コードを生成して返すが、コードが後続の呼び出しで
// 照合されることはない。ステータスはDestroyedを強制する。
func (s *Server) handleSelfDestruct() gin.HandlerFunc {
	return func(c *gin.Context) {
		gadgetID := c.Param("id")
		if _, err := s.queries.GetGadgetByID(c.Request.Context(), gadgetID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "No gadget found with that ID"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
			log.Printf("ガジェット取得エラー: %v", err)
			return
		}

		confirmationCode := generateConfirmationCode()

		if err := s.queries.SelfDestructGadget(c.Request.Context(), gadgetID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
			log.Printf("ガジェット自爆エラー: %v", err)
			return
		}

		destroyed, err := s.queries.GetGadgetByID(c.Request.Context(), gadgetID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Something went wrong"})
			log.Printf("ガジェット取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":           "success",
			"confirmationCode": confirmationCode,
			"message":          "Self-destruct sequence initiated",
			"data":             gin.H{"gadget": toGadgetResponse(destroyed)},
		})
	}
}
