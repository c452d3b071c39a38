package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wolfman30/lead-capture/cmd/mainconfig"
	appconfig "github.com/wolfman30/lead-capture/internal/config"
	"github.com/wolfman30/lead-capture/internal/leads"
	"github.com/wolfman30/lead-capture/pkg/logging"
)

const pingTimeout = 5 * time.Second

// LeadStorage is the storage backend the submission endpoint writes to.
type LeadStorage struct {
	Repository leads.Repository
	Backend    string
	close      func()
}

// Close releases backend connections.
func (s *LeadStorage) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}

var (
	loadAWSConfig = mainconfig.LoadAWSConfig
	newPgxPool    = pgxpool.New
)

// BuildLeadStorage selects the backend named by LEADS_BACKEND. Missing
// credentials never fail startup: the repository reports itself as not
// configured and the endpoint answers 503.
func BuildLeadStorage(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*LeadStorage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	switch cfg.LeadsBackend {
	case appconfig.BackendMemory:
		logger.Warn("using in-memory lead storage; leads are lost on restart")
		return &LeadStorage{Repository: leads.NewInMemoryRepository(), Backend: appconfig.BackendMemory}, nil
	case appconfig.BackendDynamoDB:
		return buildDynamoStorage(ctx, cfg, logger), nil
	case appconfig.BackendPostgres, "":
		return buildPostgresStorage(ctx, cfg, logger), nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown leads backend %q", cfg.LeadsBackend)
	}
}

func buildPostgresStorage(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) *LeadStorage {
	unconfigured := &LeadStorage{Repository: leads.NewUnconfiguredRepository(), Backend: appconfig.BackendPostgres}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		logger.Error("DATABASE_URL is not set; lead submissions will be rejected")
		return unconfigured
	}

	pool, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("invalid DATABASE_URL; lead submissions will be rejected", "error", err)
		return unconfigured
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		logger.Warn("postgres not reachable at startup", "error", err)
	}

	return &LeadStorage{
		Repository: leads.NewPostgresRepository(pool),
		Backend:    appconfig.BackendPostgres,
		close:      pool.Close,
	}
}

func buildDynamoStorage(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) *LeadStorage {
	unconfigured := &LeadStorage{Repository: leads.NewUnconfiguredRepository(), Backend: appconfig.BackendDynamoDB}
	if strings.TrimSpace(cfg.LeadsTable) == "" {
		logger.Error("LEADS_TABLE is not set; lead submissions will be rejected")
		return unconfigured
	}

	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config; lead submissions will be rejected", "error", err)
		return unconfigured
	}

	return &LeadStorage{
		Repository: leads.NewDynamoRepository(dynamodb.NewFromConfig(awsCfg), cfg.LeadsTable),
		Backend:    appconfig.BackendDynamoDB,
	}
}
