package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/wagewise-hq/wagewise-backend-go/internal/config"
	appHTTP "github.com/wagewise-hq/wagewise-backend-go/internal/handler/http"
	"github.com/wagewise-hq/wagewise-backend-go/internal/pkg/cron"
	"github.com/wagewise-hq/wagewise-backend-go/internal/pkg/database"
	"github.com/wagewise-hq/wagewise-backend-go/internal/repository/postgresql"
	advanceService "github.com/wagewise-hq/wagewise-backend-go/internal/service/advance"
	attendanceService "github.com/wagewise-hq/wagewise-backend-go/internal/service/attendance"
	penaltyService "github.com/wagewise-hq/wagewise-backend-go/internal/service/penalty"
	performanceService "github.com/wagewise-hq/wagewise-backend-go/internal/service/performance"
	reportService "github.com/wagewise-hq/wagewise-backend-go/internal/service/report"
	salaryService "github.com/wagewise-hq/wagewise-backend-go/internal/service/salary"
	settingsService "github.com/wagewise-hq/wagewise-backend-go/internal/service/settings"
	shiftbonusService "github.com/wagewise-hq/wagewise-backend-go/internal/service/shiftbonus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	periodSalaryRepo := postgresql.NewPeriodSalaryRepository(db)
	bonusEntryRepo := postgresql.NewShiftBonusRepository(db)
	penaltyEntryRepo := postgresql.NewPenaltyRepository(db)
	eventRepo := postgresql.NewPerformanceRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	sweepStateRepo := postgresql.NewSweepStateRepository(db)
	txRunner := postgresql.NewTxRunner(db)

	settingsResolver := settingsService.NewResolver(settingsRepo)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	salarySvc := salaryService.NewSalarySnapshotService(employeeRepo, attendanceRepo, periodSalaryRepo)
	bonusSvc := shiftbonusService.NewShiftBonusService(bonusEntryRepo, attendanceRepo, periodSalaryRepo, salarySvc, settingsResolver, txRunner)
	penaltySvc := penaltyService.NewLatePenaltyService(penaltyEntryRepo, attendanceRepo, employeeRepo, settingsResolver)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, bonusSvc, penaltySvc)
	rewardFlagSvc := performanceService.NewRewardFlagService(eventRepo, attendanceRepo, employeeRepo, holidayRepo, settingsResolver)
	reportSvc := reportService.NewPayrollReportService(employeeRepo, attendanceRepo, periodSalaryRepo, salarySvc, advanceRepo, penaltyEntryRepo)
	advanceSvc := advanceService.NewAdvanceService(advanceRepo, employeeRepo)

	scheduler := cron.NewScheduler()
	sweepJobs := cron.NewSweepJobs(attendanceSvc, salarySvc, rewardFlagSvc, employeeRepo, sweepStateRepo)
	sweepJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	payrollHandler := appHTTP.NewPayrollHandler(salarySvc, bonusSvc, penaltySvc, advanceSvc)
	performanceHandler := appHTTP.NewPerformanceHandler(rewardFlagSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)

	router := appHTTP.NewRouter(
		tokenAuth,
		attendanceHandler,
		reportHandler,
		payrollHandler,
		performanceHandler,
		settingsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
