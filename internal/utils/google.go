package utils

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const oauthGoogleUrlAPI = "https://www.googleapis.com/oauth2/v2/userinfo?access_token="

var oauthClient = &http.Client{Timeout: 10 * time.Second}

// GetUserDataFromGoogle exchanges a provider access token for the user's
// profile JSON.
func GetUserDataFromGoogle(accessToken string) ([]byte, error) {
	response, err := oauthClient.Get(oauthGoogleUrlAPI + accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %s", err.Error())
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d", response.StatusCode)
	}

	contents, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed read response: %s", err.Error())
	}

	return contents, nil
}
