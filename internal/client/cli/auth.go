package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// getSimpleText, getPassword and getSecret are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getSecret = GetSecret

var errEmptyInput = errors.New("input must not be empty")

func (a *App) readCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return "", nil, err
	}
	if email == "" {
		return "", nil, errEmptyInput
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return "", nil, err
	}
	if len(password) == 0 {
		return "", nil, errEmptyInput
	}
	return email, password, nil
}

func (a *App) readBiometricKey() ([]byte, error) {
	key, err := getSecret(os.Stdout, "Enter biometric key: ")
	if err != nil {
		return nil, err
	}
	if len(key) == 0 {
		return nil, errEmptyInput
	}
	return key, nil
}

// Register prompts for an email and password and creates a new account.
// The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.client.Register(ctx, email, string(password))
	a.trackAvailability(err)
	if err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Registered %s (id %s)", user.Email, user.ID))
	return nil
}

// Login authenticates with email and password and keeps the access token
// for the rest of the session.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.client.Login(ctx, email, string(password))
	a.trackAvailability(err)
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Login successful")
	a.accessToken = token
	a.userName = email
	return nil
}

// BiometricLogin authenticates with a previously enrolled biometric key.
func (a *App) BiometricLogin(ctx context.Context) error {
	key, err := a.readBiometricKey()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(key)

	token, err := a.client.BiometricLogin(ctx, string(key))
	a.trackAvailability(err)
	if err != nil {
		log.Printf("Biometric login unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Login successful")
	a.accessToken = token
	a.userName = "biometric"
	return nil
}

// EnrollBiometric attaches a biometric key to the account identified by
// email and password.
func (a *App) EnrollBiometric(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(password)

	key, err := a.readBiometricKey()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(key)

	if _, err := a.client.EnrollBiometricKey(ctx, email, string(password), string(key)); err != nil {
		a.trackAvailability(err)
		log.Printf("Enrollment unsuccessful: %s", err.Error())
		return err
	}

	a.setMode(ModeOnline)
	printlnFn("Biometric key enrolled")
	return nil
}

// ShowToken prints the access token obtained by the last login.
func (a *App) ShowToken(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn(a.accessToken)
	return nil
}

// Health checks the server and updates the connectivity mode.
func (a *App) Health(ctx context.Context) error {
	msg, err := a.client.HealthCheck(ctx)
	a.trackAvailability(err)
	if err != nil {
		log.Printf("Health check failed: %s", err.Error())
		return err
	}
	printlnFn(msg)
	return nil
}

// Logout forgets the in-memory access token.
func (a *App) Logout(ctx context.Context) error {
	a.accessToken = ""
	a.userName = ""
	return nil
}
