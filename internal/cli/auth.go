// auth.go implements login, logout, registration, and the password
// reset flow. Validation failures are caught before any network call.
package cli

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/shopverse-dev/shopverse/internal/api"
	"github.com/shopverse-dev/shopverse/internal/guard"
	"github.com/shopverse-dev/shopverse/internal/log"
	"github.com/shopverse-dev/shopverse/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the storefront",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the saved session",
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

var verifyOtpCmd = &cobra.Command{
	Use:   "verify-otp",
	Short: "Confirm the registration OTP sent to your email",
	RunE:  runVerifyOtp,
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Start the password reset flow",
	RunE:  runForgotPassword,
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Verify the reset OTP and set a new password",
	RunE:  runResetPassword,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the profile of the logged-in account",
	RunE:  runProfile,
}

func init() {
	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("password", "", "Account password")
	loginCmd.Flags().Bool("admin", false, "Log in as a store administrator")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().String("username", "", "Display name")
	registerCmd.Flags().String("email", "", "Account email")
	registerCmd.Flags().String("password", "", "Account password")
	registerCmd.Flags().Bool("admin", false, "Register a store administrator account")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")

	verifyOtpCmd.Flags().String("email", "", "Account email")
	verifyOtpCmd.Flags().String("otp", "", "One-time password from the email")
	_ = verifyOtpCmd.MarkFlagRequired("email")
	_ = verifyOtpCmd.MarkFlagRequired("otp")

	forgotPasswordCmd.Flags().String("email", "", "Account email")
	_ = forgotPasswordCmd.MarkFlagRequired("email")

	resetPasswordCmd.Flags().String("email", "", "Account email")
	resetPasswordCmd.Flags().String("otp", "", "Reset OTP from the email")
	resetPasswordCmd.Flags().String("new-password", "", "New password")
	_ = resetPasswordCmd.MarkFlagRequired("email")
	_ = resetPasswordCmd.MarkFlagRequired("otp")
	_ = resetPasswordCmd.MarkFlagRequired("new-password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	asAdmin, _ := cmd.Flags().GetBool("admin")

	req := api.LoginRequest{Email: email, Password: password}
	var resp *api.AuthResponse
	role := session.RoleShopper
	if asAdmin {
		role = session.RoleAdmin
		resp, err = env.client.AdminLogin(cmd.Context(), req)
	} else {
		resp, err = env.client.Login(cmd.Context(), req)
	}
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	err = env.sessions.Login(session.Session{
		Identity:    resp.Email,
		DisplayName: resp.Username,
		Role:        role,
		Token:       resp.Token,
	})
	if err != nil {
		return err
	}

	_ = env.logger.Append(log.LogEvent{Event: log.EventLogin, Identity: resp.Email, Role: role.String()})
	fmt.Printf("Logged in as %s (%s)\n", resp.Username, role)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	identity := ""
	if cur := env.sessions.Current(); cur != nil {
		identity = cur.Identity
	}
	if err := env.sessions.Logout(); err != nil {
		return err
	}

	_ = env.logger.Append(log.LogEvent{Event: log.EventLogout, Identity: identity})
	fmt.Println("Logged out")
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	username, _ := cmd.Flags().GetString("username")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	asAdmin, _ := cmd.Flags().GetBool("admin")

	if err := validatePassword(password); err != nil {
		return err
	}

	req := api.RegisterRequest{Username: username, Email: email, Password: password}
	if asAdmin {
		err = env.client.AdminRegister(cmd.Context(), req)
	} else {
		err = env.client.Register(cmd.Context(), req)
	}
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	if asAdmin {
		fmt.Println("Admin account created; log in with: shopverse login --admin")
	} else {
		fmt.Println("Account created; confirm the OTP with: shopverse verify-otp")
	}
	return nil
}

func runVerifyOtp(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	email, _ := cmd.Flags().GetString("email")
	otp, _ := cmd.Flags().GetString("otp")

	if err := env.client.VerifyOTP(cmd.Context(), api.OTPRequest{Email: email, OTP: otp}); err != nil {
		return fmt.Errorf("OTP verification failed: %w", err)
	}

	fmt.Println("Account verified; you can log in now")
	return nil
}

func runForgotPassword(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	email, _ := cmd.Flags().GetString("email")
	if err := env.client.ForgotPassword(cmd.Context(), email); err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	fmt.Println("Reset OTP sent; finish with: shopverse reset-password")
	return nil
}

func runResetPassword(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	email, _ := cmd.Flags().GetString("email")
	otp, _ := cmd.Flags().GetString("otp")
	newPassword, _ := cmd.Flags().GetString("new-password")

	if err := validatePassword(newPassword); err != nil {
		return err
	}
	if err := env.client.VerifyResetOTP(cmd.Context(), api.OTPRequest{Email: email, OTP: otp}); err != nil {
		return fmt.Errorf("OTP verification failed: %w", err)
	}
	if err := env.client.ResetPassword(cmd.Context(), api.ResetPasswordRequest{Email: email, NewPassword: newPassword}); err != nil {
		return fmt.Errorf("password reset failed: %w", err)
	}

	fmt.Println("Password updated")
	return nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	var profile *api.Profile
	switch env.sessions.Role() {
	case session.RoleAdmin:
		profile, err = env.client.AdminProfile(cmd.Context())
	case session.RoleShopper:
		profile, err = env.client.UserProfile(cmd.Context())
	default:
		return errors.New(redirectHint(guard.RouteShopperLogin))
	}
	if err != nil {
		return fmt.Errorf("fetch profile: %w", err)
	}

	fmt.Printf("Username: %s\nEmail:    %s\nRole:     %s\n", profile.Username, profile.Email, env.sessions.Role())
	return nil
}

// validatePassword enforces the client-side password policy before any
// network call: at least 8 characters with a letter and a digit.
func validatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return errors.New("password must contain a letter and a digit")
	}
	return nil
}
