// Command token mints an access token for calling the engine API.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/config"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "user id placed in the user_id claim")
	email := flag.String("email", "", "email placed in the email claim")
	role := flag.String("role", string(jwt.RoleViewer), "admin, payroll, planner or viewer")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	switch jwt.Role(*role) {
	case jwt.RoleAdmin, jwt.RolePayroll, jwt.RolePlanner, jwt.RoleViewer:
	default:
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(2)
	}
	if *userID == "" {
		fmt.Fprintln(os.Stderr, "-user is required")
		os.Exit(2)
	}

	token, exp, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).
		GenerateAccessToken(*userID, *email, jwt.Role(*role))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintln(os.Stderr, "expires at", time.Unix(exp, 0).UTC().Format(time.RFC3339))
}
