package main

import (
	"fmt"
	"net/http"

	"github.com/stafftrail/stafftrail-backend-go/internal/config"
	appHTTP "github.com/stafftrail/stafftrail-backend-go/internal/handler/http"
	"github.com/stafftrail/stafftrail-backend-go/internal/pkg/database"
	"github.com/stafftrail/stafftrail-backend-go/internal/pkg/facematch"
	"github.com/stafftrail/stafftrail-backend-go/internal/pkg/jwt"
	"github.com/stafftrail/stafftrail-backend-go/internal/repository/postgresql"
	attendanceService "github.com/stafftrail/stafftrail-backend-go/internal/service/attendance"
	serviceAuth "github.com/stafftrail/stafftrail-backend-go/internal/service/auth"
	employeeService "github.com/stafftrail/stafftrail-backend-go/internal/service/employee"
	verificationService "github.com/stafftrail/stafftrail-backend-go/internal/service/verification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	faceClient := facematch.NewClient(cfg.FaceService.URL, cfg.FaceService.Timeout)

	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo)
	verificationSvc := verificationService.NewVerificationService(employeeRepo, attendanceRepo, attendanceSvc, faceClient)

	authHandler := appHTTP.NewAuthHandler(authService)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	verificationHandler := appHTTP.NewVerificationHandler(verificationSvc)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		authHandler,
		employeeHandler,
		attendanceHandler,
		verificationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
