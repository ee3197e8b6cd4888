package utils

import (
	"academy/config"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// GatewayOrderStatus is the response from the UPI gateway order-status API
type GatewayOrderStatus struct {
	OrderRef string  `json:"order_ref"`
	Status   string  `json:"status"` // SUCCESS, PENDING, FAILED
	Amount   float64 `json:"amount"`
	UTR      string  `json:"utr"`
}

// CheckGatewayOrder looks up an order on the configured UPI gateway. The
// result is informational only: manual verification remains the source of
// truth, the gateway answer is attached to the audit trail.
func CheckGatewayOrder(orderRef string) (*GatewayOrderStatus, error) {
	if config.AppConfig.GatewayApiURL == "" {
		return nil, fmt.Errorf("payment gateway is not configured")
	}

	client := resty.New()

	var status GatewayOrderStatus
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.GatewayApiKey).
		SetQueryParam("order_ref", orderRef).
		SetResult(&status).
		Get(config.AppConfig.GatewayApiURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order status: %v", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("gateway error: %s", resp.String())
	}

	return &status, nil
}
