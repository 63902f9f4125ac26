package services

import (
	"context"
	"errors"
	"testing"

	"nagari-society/internal/core/domain"
)

func TestNewUserJourney(t *testing.T) {
	flows, _, _, _ := newTestStack(t)
	ctx := context.Background()

	view, err := flows.Start(ctx, "device-1")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if view.Status != FlowPhoneEntry {
		t.Fatalf("fresh device should start at phone entry, got %s", view.Status)
	}

	view, err = flows.SubmitPhone(ctx, view.FlowID, "9999999999")
	if err != nil {
		t.Fatalf("SubmitPhone: %v", err)
	}
	if view.Status != FlowOTPVerify {
		t.Fatalf("unknown phone should move to otp verify, got %s", view.Status)
	}

	view, err = flows.SubmitOTP(ctx, view.FlowID, "1234")
	if err != nil {
		t.Fatalf("SubmitOTP: %v", err)
	}
	if view.Status != FlowRegistration {
		t.Fatalf("verified phone should move to registration, got %s", view.Status)
	}

	view, result, err := flows.SubmitRegistration(ctx, view.FlowID, &RegistrationInput{
		FullName:    "Asha Kulkarni",
		FlatID:      "A-101",
		MPIN:        "2468",
		ConfirmMPIN: "2468",
	})
	if err != nil {
		t.Fatalf("SubmitRegistration: %v", err)
	}
	if view.Status != FlowAuthenticated {
		t.Fatalf("expected authenticated, got %s", view.Status)
	}
	if !result.NewUser {
		t.Error("registration path should report a new user")
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("expected a token pair after registration")
	}
	if result.Identity.FullName != "Asha Kulkarni" {
		t.Errorf("identity name = %q, want Asha Kulkarni", result.Identity.FullName)
	}
	if result.Identity.Role != "member" {
		t.Errorf("registered role = %q, want member", result.Identity.Role)
	}
}

func TestReturningUserJourney(t *testing.T) {
	flows, _, _, db := newTestStack(t)
	seedAdmin(t, db)
	ctx := context.Background()

	// The admin alias stands in for the seeded phone number
	view, err := flows.Start(ctx, "device-admin")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	view, err = flows.SubmitPhone(ctx, view.FlowID, "admin")
	if err != nil {
		t.Fatalf("SubmitPhone: %v", err)
	}
	if view.Status != FlowMPINEntry {
		t.Fatalf("registered phone should move to mpin entry, got %s", view.Status)
	}
	if view.DisplayName != "Society Admin" {
		t.Errorf("display name = %q, want Society Admin", view.DisplayName)
	}

	view, result, err := flows.SubmitMPIN(ctx, view.FlowID, "1234")
	if err != nil {
		t.Fatalf("SubmitMPIN: %v", err)
	}
	if view.Status != FlowAuthenticated {
		t.Fatalf("expected authenticated, got %s", view.Status)
	}
	if result.NewUser {
		t.Error("mpin login should not report a new user")
	}
	if result.Identity.Role != "admin" {
		t.Errorf("admin login role = %q, want admin", result.Identity.Role)
	}
}

func TestBootstrapRemembersDevice(t *testing.T) {
	flows, _, _, db := newTestStack(t)
	seedAdmin(t, db)
	ctx := context.Background()

	// First login on this device
	view, _ := flows.Start(ctx, "device-r")
	view, _ = flows.SubmitPhone(ctx, view.FlowID, "admin")
	if _, _, err := flows.SubmitMPIN(ctx, view.FlowID, "1234"); err != nil {
		t.Fatalf("SubmitMPIN: %v", err)
	}

	// Next launch should land straight on MPIN entry
	view, err := flows.Start(ctx, "device-r")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if view.Status != FlowMPINEntry {
		t.Fatalf("remembered device should bootstrap to mpin entry, got %s", view.Status)
	}
	if view.DisplayName != "Society Admin" {
		t.Errorf("display name = %q, want Society Admin", view.DisplayName)
	}

	// An unknown device still starts at phone entry
	view, err = flows.Start(ctx, "device-unknown")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if view.Status != FlowPhoneEntry {
		t.Fatalf("unknown device should bootstrap to phone entry, got %s", view.Status)
	}
}

func TestRegistrationValidation(t *testing.T) {
	tests := []struct {
		name  string
		input RegistrationInput
		want  error
	}{
		{"missing name", RegistrationInput{FlatID: "A-1", MPIN: "1111", ConfirmMPIN: "1111"}, domain.ErrFullNameRequired},
		{"missing flat", RegistrationInput{FullName: "X", MPIN: "1111", ConfirmMPIN: "1111"}, domain.ErrFlatIDRequired},
		{"short mpin", RegistrationInput{FullName: "X", FlatID: "A-1", MPIN: "111", ConfirmMPIN: "111"}, domain.ErrMPINFormat},
		{"non-digit mpin", RegistrationInput{FullName: "X", FlatID: "A-1", MPIN: "12ab", ConfirmMPIN: "12ab"}, domain.ErrMPINFormat},
		{"mismatch", RegistrationInput{FullName: "X", FlatID: "A-1", MPIN: "1111", ConfirmMPIN: "2222"}, domain.ErrMPINMismatch},
		{"valid", RegistrationInput{FullName: "X", FlatID: "A-1", MPIN: "1111", ConfirmMPIN: "1111"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.input.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRejectedRegistrationKeepsFlowAlive(t *testing.T) {
	flows, directory, _, _ := newTestStack(t)
	ctx := context.Background()

	view, _ := flows.Start(ctx, "device-2")
	view, _ = flows.SubmitPhone(ctx, view.FlowID, "8888888888")
	view, _ = flows.SubmitOTP(ctx, view.FlowID, "1234")

	_, _, err := flows.SubmitRegistration(ctx, view.FlowID, &RegistrationInput{
		FullName:    "Ravi",
		FlatID:      "B-2",
		MPIN:        "1111",
		ConfirmMPIN: "2222",
	})
	if !errors.Is(err, domain.ErrMPINMismatch) {
		t.Fatalf("expected mpin mismatch, got %v", err)
	}

	// No identity was created by the rejected submission
	result, err := directory.Lookup(ctx, "8888888888")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if result.Exists {
		t.Error("rejected registration must not create an identity")
	}

	// The flow is still on registration and accepts a corrected form
	view, _, err = flows.SubmitRegistration(ctx, view.FlowID, &RegistrationInput{
		FullName:    "Ravi",
		FlatID:      "B-2",
		MPIN:        "1111",
		ConfirmMPIN: "1111",
	})
	if err != nil {
		t.Fatalf("corrected registration: %v", err)
	}
	if view.Status != FlowAuthenticated {
		t.Fatalf("expected authenticated, got %s", view.Status)
	}
}

func TestMPINLockout(t *testing.T) {
	flows, _, _, db := newTestStack(t)
	seedAdmin(t, db)
	ctx := context.Background()

	view, _ := flows.Start(ctx, "device-3")
	view, _ = flows.SubmitPhone(ctx, view.FlowID, "admin")

	for i := 0; i < 4; i++ {
		_, _, err := flows.SubmitMPIN(ctx, view.FlowID, "0000")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected invalid credentials, got %v", i+1, err)
		}
	}

	// Fifth failure locks the flow
	_, _, err := flows.SubmitMPIN(ctx, view.FlowID, "0000")
	if !errors.Is(err, domain.ErrFlowLocked) {
		t.Fatalf("fifth failure should lock, got %v", err)
	}

	// Even a correct MPIN is refused while locked
	_, _, err = flows.SubmitMPIN(ctx, view.FlowID, "1234")
	if !errors.Is(err, domain.ErrFlowLocked) {
		t.Fatalf("locked flow should refuse the correct mpin, got %v", err)
	}
}

func TestSwitchAccountForgetsDevice(t *testing.T) {
	flows, _, sessions, db := newTestStack(t)
	seedAdmin(t, db)
	ctx := context.Background()

	view, _ := flows.Start(ctx, "device-4")
	view, _ = flows.SubmitPhone(ctx, view.FlowID, "admin")
	if _, _, err := flows.SubmitMPIN(ctx, view.FlowID, "1234"); err != nil {
		t.Fatalf("SubmitMPIN: %v", err)
	}

	view, _ = flows.Start(ctx, "device-4")
	if view.Status != FlowMPINEntry {
		t.Fatalf("expected mpin entry, got %s", view.Status)
	}

	view, err := flows.SwitchAccount(ctx, view.FlowID)
	if err != nil {
		t.Fatalf("SwitchAccount: %v", err)
	}
	if view.Status != FlowPhoneEntry {
		t.Fatalf("switch account should return to phone entry, got %s", view.Status)
	}
	if view.Phone != "" || view.DisplayName != "" {
		t.Error("switch account should drop the phone and display name")
	}

	remembered, err := sessions.RememberedPhone(ctx, "device-4")
	if err != nil {
		t.Fatalf("RememberedPhone: %v", err)
	}
	if remembered != "" {
		t.Errorf("remembered phone = %q, want forgotten", remembered)
	}
	if _, err := sessions.ActiveIdentity(ctx, "device-4"); !errors.Is(err, ErrNoActiveLogin) {
		t.Errorf("active identity after switch = %v, want ErrNoActiveLogin", err)
	}
}

func TestLogoutKeepsRememberedPhone(t *testing.T) {
	flows, _, sessions, db := newTestStack(t)
	seedAdmin(t, db)
	ctx := context.Background()

	view, _ := flows.Start(ctx, "device-5")
	view, _ = flows.SubmitPhone(ctx, view.FlowID, "admin")
	if _, _, err := flows.SubmitMPIN(ctx, view.FlowID, "1234"); err != nil {
		t.Fatalf("SubmitMPIN: %v", err)
	}

	if err := sessions.Logout(ctx, "device-5", ""); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if _, err := sessions.ActiveIdentity(ctx, "device-5"); !errors.Is(err, ErrNoActiveLogin) {
		t.Errorf("active identity after logout = %v, want ErrNoActiveLogin", err)
	}

	remembered, err := sessions.RememberedPhone(ctx, "device-5")
	if err != nil {
		t.Fatalf("RememberedPhone: %v", err)
	}
	if remembered != "9876543210" {
		t.Errorf("remembered phone = %q, want 9876543210", remembered)
	}

	// Next launch therefore lands back on MPIN entry
	view, _ = flows.Start(ctx, "device-5")
	if view.Status != FlowMPINEntry {
		t.Fatalf("post-logout bootstrap should offer mpin entry, got %s", view.Status)
	}
}

func TestChangeNumberReturnsToPhoneEntry(t *testing.T) {
	flows, _, _, _ := newTestStack(t)
	ctx := context.Background()

	view, _ := flows.Start(ctx, "device-6")
	view, _ = flows.SubmitPhone(ctx, view.FlowID, "7777777777")
	if view.Status != FlowOTPVerify {
		t.Fatalf("expected otp verify, got %s", view.Status)
	}

	view, err := flows.ChangeNumber(ctx, view.FlowID)
	if err != nil {
		t.Fatalf("ChangeNumber: %v", err)
	}
	if view.Status != FlowPhoneEntry {
		t.Fatalf("expected phone entry, got %s", view.Status)
	}
	if view.Phone != "" {
		t.Error("abandoned phone should be cleared")
	}
}

func TestInvalidTransitions(t *testing.T) {
	flows, _, _, _ := newTestStack(t)
	ctx := context.Background()

	view, _ := flows.Start(ctx, "device-7")

	tests := []struct {
		name string
		call func() error
	}{
		{"otp at phone entry", func() error {
			_, err := flows.SubmitOTP(ctx, view.FlowID, "1234")
			return err
		}},
		{"mpin at phone entry", func() error {
			_, _, err := flows.SubmitMPIN(ctx, view.FlowID, "1234")
			return err
		}},
		{"registration at phone entry", func() error {
			_, _, err := flows.SubmitRegistration(ctx, view.FlowID, &RegistrationInput{
				FullName: "X", FlatID: "A-1", MPIN: "1111", ConfirmMPIN: "1111",
			})
			return err
		}},
		{"switch account at phone entry", func() error {
			_, err := flows.SwitchAccount(ctx, view.FlowID)
			return err
		}},
		{"change number at phone entry", func() error {
			_, err := flows.ChangeNumber(ctx, view.FlowID)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, domain.ErrInvalidTransition) {
				t.Errorf("got %v, want ErrInvalidTransition", err)
			}
		})
	}
}

func TestUnknownFlowID(t *testing.T) {
	flows, _, _, _ := newTestStack(t)

	_, err := flows.SubmitPhone(context.Background(), "no-such-flow", "9999999999")
	if !errors.Is(err, domain.ErrFlowNotFound) {
		t.Errorf("got %v, want ErrFlowNotFound", err)
	}
}

func TestWrongOTPLeavesFlowUnchanged(t *testing.T) {
	flows, _, _, _ := newTestStack(t)
	ctx := context.Background()

	view, _ := flows.Start(ctx, "device-8")
	view, _ = flows.SubmitPhone(ctx, view.FlowID, "6666666666")

	_, err := flows.SubmitOTP(ctx, view.FlowID, "9999")
	if !errors.Is(err, domain.ErrInvalidOTP) {
		t.Fatalf("expected invalid otp, got %v", err)
	}

	// The flow still accepts the right code
	view, err = flows.SubmitOTP(ctx, view.FlowID, "1234")
	if err != nil {
		t.Fatalf("SubmitOTP after retry: %v", err)
	}
	if view.Status != FlowRegistration {
		t.Fatalf("expected registration, got %s", view.Status)
	}
}
