// Package reportingclient submits best-effort node and mint reports to the reporting service.
package reportingclient

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/pkg/httpclient"
	"github.com/gaze-network/mint-authority/pkg/logger"
)

const DefaultBaseURL = "https://mint.api.gaze.network"

type Config struct {
	Disabled   bool   `mapstructure:"disabled"`
	BaseURL    string `mapstructure:"base_url"`
	Name       string `mapstructure:"name"`
	WebsiteURL string `mapstructure:"website_url"`
	APIURL     string `mapstructure:"api_url"`
}

type ReportingClient struct {
	httpClient *httpclient.Client
	config     Config
}

func New(config Config) (*ReportingClient, error) {
	if config.Name == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "reporting.name is required when reporting is enabled")
	}
	httpClient, err := httpclient.New(utils.Default(config.BaseURL, DefaultBaseURL))
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	return &ReportingClient{
		httpClient: httpClient,
		config:     config,
	}, nil
}

type SubmitMintReportPayload struct {
	Type          string         `json:"type"`
	ClientVersion string         `json:"clientVersion"`
	DBVersion     int            `json:"dbVersion"`
	Network       common.Network `json:"network"`
	ProgramID     common.Address `json:"programId"`
	MintIndex     uint64         `json:"mintIndex"`
	Minter        common.Address `json:"minter"`
	Amount        uint64         `json:"amount"`
	RecordAddress common.Address `json:"recordAddress"`
	Timestamp     int64          `json:"timestamp"`
}

func (r *ReportingClient) SubmitMintReport(ctx context.Context, payload SubmitMintReportPayload) error {
	return r.submit(ctx, "/v1/report/mint", payload)
}

type SubmitNodeReportPayload struct {
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Network    common.Network `json:"network"`
	ProgramID  common.Address `json:"programId"`
	WebsiteURL string         `json:"websiteURL,omitempty"`
	APIURL     string         `json:"apiURL,omitempty"`
}

// SubmitNodeReport announces this node, identified by the configured name, for module on network.
func (r *ReportingClient) SubmitNodeReport(ctx context.Context, module string, network common.Network, programID common.Address) error {
	return r.submit(ctx, "/v1/report/node", SubmitNodeReportPayload{
		Name:       r.config.Name,
		Type:       module,
		Network:    network,
		ProgramID:  programID,
		WebsiteURL: r.config.WebsiteURL,
		APIURL:     r.config.APIURL,
	})
}

// submit only fails on transport errors. Rejected reports are logged and dropped.
func (r *ReportingClient) submit(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "can't marshal payload")
	}
	resp, err := r.httpClient.Post(ctx, path, httpclient.RequestOptions{Body: body})
	if err != nil {
		return errors.Wrap(err, "can't send request")
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		logger.WarnContext(ctx, "Report rejected",
			slog.String("path", path),
			slog.Int("status_code", resp.StatusCode()),
			slog.String("response_body", string(resp.Body())),
		)
		return nil
	}
	logger.DebugContext(ctx, "Report submitted", slog.String("path", path), slog.Any("payload", payload))
	return nil
}
