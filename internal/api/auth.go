package api

import (
	"context"
	"net/http"
)

// RegisterRequest creates a new account. The same shape serves shopper
// and admin registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the payload of a successful login.
type AuthResponse struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// OTPRequest confirms a one-time password sent to an email address.
type OTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordRequest sets a new password after OTP verification.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// Profile is the account profile payload shared by shoppers and admins.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register creates a shopper account. The account becomes usable after
// OTP verification.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/user/register", req, nil)
}

// VerifyOTP confirms the registration OTP.
func (c *Client) VerifyOTP(ctx context.Context, req OTPRequest) error {
	return c.do(ctx, http.MethodPost, "/user/verify-otp", req, nil)
}

// Login authenticates a shopper and returns the bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/user/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ForgotPassword starts the password reset flow.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/user/forgot-password", map[string]string{"email": email}, nil)
}

// VerifyResetOTP confirms the password reset OTP.
func (c *Client) VerifyResetOTP(ctx context.Context, req OTPRequest) error {
	return c.do(ctx, http.MethodPost, "/user/verify-reset-otp", req, nil)
}

// ResetPassword completes the password reset flow.
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/user/reset-password", req, nil)
}

// UserProfile fetches the authenticated shopper's profile.
func (c *Client) UserProfile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.get(ctx, "/user/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminRegister creates an admin account.
func (c *Client) AdminRegister(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/admin/register", req, nil)
}

// AdminLogin authenticates an admin. The shape mirrors shopper login;
// the role is fixed to admin by the caller.
func (c *Client) AdminLogin(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/admin/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminProfile fetches the authenticated admin's profile.
func (c *Client) AdminProfile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.get(ctx, "/admin/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAdminProfile replaces the admin's profile fields.
func (c *Client) UpdateAdminProfile(ctx context.Context, p Profile) error {
	return c.do(ctx, http.MethodPut, "/admin/profile", p, nil)
}
