package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"eduplatform/cmd/app"
	"eduplatform/internal/config"
	handlers "eduplatform/internal/handler"
	"eduplatform/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/health/", handler.HealthHandler).Methods(http.MethodGet)

	router.HandleFunc("/register/", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/login/", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/token/refresh/", handler.RefreshToken).Methods(http.MethodPost)
	router.Handle("/logout/", middleware.RequireAuth(http.HandlerFunc(handler.Logout))).Methods(http.MethodPost)
	router.Handle("/me/", middleware.RequireAuth(http.HandlerFunc(handler.Me))).Methods(http.MethodGet)

	router.HandleFunc("/courses/", handler.ListCourses).Methods(http.MethodGet)
	router.HandleFunc("/courses/{id}/", handler.GetCourse).Methods(http.MethodGet)
	router.Handle("/courses/", middleware.StaffOnly(http.HandlerFunc(handler.CreateCourse))).Methods(http.MethodPost)
	router.Handle("/courses/{id}/", middleware.StaffOnly(http.HandlerFunc(handler.UpdateCourse))).Methods(http.MethodPut, http.MethodPatch)
	router.Handle("/courses/{id}/", middleware.StaffOnly(http.HandlerFunc(handler.DeleteCourse))).Methods(http.MethodDelete)

	router.HandleFunc("/lessons/", handler.ListLessons).Methods(http.MethodGet)
	router.HandleFunc("/lessons/{id}/", handler.GetLesson).Methods(http.MethodGet)
	router.Handle("/lessons/", middleware.RequireAuth(http.HandlerFunc(handler.CreateLesson))).Methods(http.MethodPost)
	router.Handle("/lessons/{id}/", middleware.StaffOnly(http.HandlerFunc(handler.UpdateLesson))).Methods(http.MethodPut, http.MethodPatch)
	router.Handle("/lessons/{id}/", middleware.StaffOnly(http.HandlerFunc(handler.DeleteLesson))).Methods(http.MethodDelete)
	router.Handle("/lessons/{id}/like/", middleware.RequireAuth(http.HandlerFunc(handler.LikeLesson))).Methods(http.MethodPost)
	router.Handle("/lessons/{id}/dislike/", middleware.RequireAuth(http.HandlerFunc(handler.DislikeLesson))).Methods(http.MethodPost)

	router.HandleFunc("/lesson-files/", handler.ListLessonFiles).Methods(http.MethodGet)
	router.HandleFunc("/lesson-files/{id}/", handler.GetLessonFile).Methods(http.MethodGet)
	router.Handle("/lesson-files/", middleware.StaffOnly(http.HandlerFunc(handler.UploadLessonFile))).Methods(http.MethodPost)
	router.Handle("/lesson-files/{id}/", middleware.StaffOnly(http.HandlerFunc(handler.DeleteLessonFile))).Methods(http.MethodDelete)

	router.HandleFunc("/comments/", handler.ListComments).Methods(http.MethodGet)
	router.HandleFunc("/comments/{id}/", handler.GetComment).Methods(http.MethodGet)
	router.Handle("/comments/", middleware.RequireAuth(http.HandlerFunc(handler.CreateComment))).Methods(http.MethodPost)
	router.Handle("/comments/{id}/", middleware.RequireAuth(http.HandlerFunc(handler.UpdateComment))).Methods(http.MethodPut, http.MethodPatch)
	router.Handle("/comments/{id}/", middleware.RequireAuth(http.HandlerFunc(handler.DeleteComment))).Methods(http.MethodDelete)

	// Chain оборачивает по порядку, последний элемент снаружи: CORS отвечает
	// на preflight, затем Blacklist отклоняет заблокированные токены ещё до
	// разбора JWT, Auth кладёт пользователя в контекст для RequireAuth/StaffOnly.
	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.AuthMiddleware(cfg),
		middleware.BlacklistMiddleware(repo.Token),
		middleware.CORSMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
