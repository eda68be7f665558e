package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// ZAPIService delivers WhatsApp messages through a Z-API instance
type ZAPIService struct {
	baseURL string
	client  *http.Client
}

// NewZAPIService builds the sender from ZAPI_INSTANCE and ZAPI_TOKEN
func NewZAPIService() (*ZAPIService, error) {
	instance := os.Getenv("ZAPI_INSTANCE")
	token := os.Getenv("ZAPI_TOKEN")
	if instance == "" || token == "" {
		return nil, fmt.Errorf("missing Z-API credentials in environment variables")
	}

	return &ZAPIService{
		baseURL: fmt.Sprintf("https://api.z-api.io/instances/%s/token/%s", instance, token),
		client:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// NewZAPIServiceWithBaseURL builds a sender against an explicit base URL (for tests)
func NewZAPIServiceWithBaseURL(baseURL string) *ZAPIService {
	return &ZAPIService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type zapiSendRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SendWhatsAppMessage sends a text message through the Z-API send-messages endpoint
func (z *ZAPIService) SendWhatsAppMessage(to string, message string) error {
	body, err := json.Marshal(zapiSendRequest{Phone: to, Message: message})
	if err != nil {
		return fmt.Errorf("failed to marshal Z-API request: %w", err)
	}

	resp, err := z.client.Post(z.baseURL+"/send-messages", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("❌ Failed to send Z-API message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("z-api returned status %d", resp.StatusCode)
		log.Printf("❌ Failed to send Z-API message: %v", err)
		return err
	}

	log.Printf("✅ Z-API message sent to %s", to)
	return nil
}
