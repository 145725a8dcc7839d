package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"activity-signup/config"
	"activity-signup/internal/global/backup"
	"activity-signup/internal/global/database"
	"activity-signup/internal/global/jwt"
	"activity-signup/internal/global/logger"
	"activity-signup/internal/model"
	"activity-signup/internal/store"

	"gorm.io/gorm"
)

func usage() {
	fmt.Println("Usage: go run ./cmd/migrate -command [migrate|reset|health|token|user] [options]")
	fmt.Println("Commands:")
	fmt.Println("  migrate  - Back up, create missing tables, seed default activities")
	fmt.Println("  reset    - Drop and recreate all tables (asks for confirmation)")
	fmt.Println("  health   - Show row counts and per-activity capacity")
	fmt.Println("  token    - Issue an access token for an existing user")
	fmt.Println("  user     - Create a user if missing and set its role")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -yes          - Skip the reset confirmation")
	fmt.Println("  -email EMAIL  - User email (for token and user)")
	fmt.Println("  -role ROLE    - student, teacher or admin (for user), default admin")
	fmt.Println("  -ttl DURATION - Token lifetime (for token), default 24h")
}

func main() {
	var (
		command = flag.String("command", "", "Command: migrate, reset, health, token, user")
		yes     = flag.Bool("yes", false, "Skip confirmation for reset")
		email   = flag.String("email", "", "User email (for token and user)")
		role    = flag.String("role", string(model.RoleAdmin), "User role (for user)")
		ttl     = flag.Duration("ttl", 24*time.Hour, "Token lifetime (for token)")
	)
	flag.Parse()

	if *command == "" {
		usage()
		os.Exit(1)
	}

	config.Init()
	log := logger.New("Migrate")

	db, target, err := database.Open(config.Get().Database, config.Get().Mode)
	if err != nil {
		log.Error("连接数据库失败", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)
	database.Source = target

	ctx := context.Background()
	switch *command {
	case "migrate":
		err = runMigrate(ctx, db, target)
	case "reset":
		if !*yes && !confirm(os.Stdin, os.Stdout, "This will DELETE ALL DATA. Type RESET to continue: ") {
			fmt.Println("Reset cancelled")
			return
		}
		err = runReset(ctx, db, target)
	case "health":
		err = runHealth(ctx, db)
	case "token":
		err = runToken(ctx, db, *email, *ttl)
	case "user":
		err = runUser(ctx, db, *email, model.Role(*role))
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		log.Error("命令执行失败", "command", *command, "error", err)
		os.Exit(1)
	}
}

// confirm 只有输入完整的 RESET 才返回 true
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(line) == "RESET"
}

// backupFirst 只对已有数据的 sqlite 文件备份
func backupFirst(ctx context.Context, db *gorm.DB, target database.Target) error {
	if target.Dialect != database.DialectSQLite || !db.Migrator().HasTable("activities") {
		return nil
	}
	res, err := backup.Run(ctx, db, target, backup.Options{
		Dir:    config.Get().Backup.Dir,
		Logger: logger.New("Backup"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Backup created: %s\n", res.Path)
	return nil
}

func runMigrate(ctx context.Context, db *gorm.DB, target database.Target) error {
	if err := backupFirst(ctx, db, target); err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	fmt.Println("Schema is up to date")

	seeded, err := store.Seed(ctx, db)
	if err != nil {
		return err
	}
	if seeded {
		fmt.Println("Seeded default activities")
	}

	n, err := store.BackfillTimestamps(ctx, db)
	if err != nil {
		return err
	}
	if n > 0 {
		fmt.Printf("Backfilled created_at on %d rows\n", n)
	}
	return runHealth(ctx, db)
}

func runReset(ctx context.Context, db *gorm.DB, target database.Target) error {
	if err := backupFirst(ctx, db, target); err != nil {
		return err
	}
	if err := database.Reset(db); err != nil {
		return err
	}
	if _, err := store.Seed(ctx, db); err != nil {
		return err
	}
	fmt.Println("Database reset and seeded")
	return nil
}

func runHealth(ctx context.Context, db *gorm.DB) error {
	stats, err := store.GetStats(ctx, db)
	if err != nil {
		return err
	}
	fmt.Println("Database: connected")
	fmt.Printf("  activities:  %d\n", stats.Activities)
	fmt.Printf("  users:       %d\n", stats.Users)
	fmt.Printf("  enrollments: %d\n", stats.Enrollments)

	activities, err := store.ListActivities(ctx, db)
	if err != nil {
		return err
	}
	for i := range activities {
		fmt.Println("  " + capacityLine(&activities[i]))
	}
	return nil
}

func runToken(ctx context.Context, db *gorm.DB, email string, ttl time.Duration) error {
	if email == "" {
		return fmt.Errorf("-email is required for token")
	}
	detail, err := store.GetUser(ctx, db, email)
	if err != nil {
		return err
	}
	token, err := jwt.GenerateToken(&detail.User, ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

// runUser 获取或创建用户并设置角色，部署后用它创建第一个管理员
func runUser(ctx context.Context, db *gorm.DB, email string, role model.Role) error {
	if email == "" {
		return fmt.Errorf("-email is required for user")
	}
	user, err := store.EnsureUser(ctx, db, email, role)
	if err != nil {
		return err
	}
	fmt.Printf("User %s (id %d) has role %s\n", user.Email, user.ID, user.Role)
	return nil
}
