package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		// Port the HTTP API listens on
		Port string `env:"SERVER_PORT" envDefault:"5260"`
	}

	// Analysis configuration
	Analysis struct {
		// Reference year for property age calculations (0 = current year)
		ReferenceYear int `env:"ANALYSIS_REFERENCE_YEAR" envDefault:"0"`

		// Number of concurrent workers for batch analysis
		WorkerCount int `env:"ANALYSIS_WORKER_COUNT" envDefault:"4"`

		// Optional path to a JSON file overriding the built-in market profiles
		MarketProfilePath string `env:"MARKET_PROFILE_PATH" envDefault:""`
	}

	// Ingestion configuration
	Ingestion struct {
		// Buffer size of the property ingestion queue (in batches)
		QueueSize int `env:"INGEST_QUEUE_SIZE" envDefault:"50"`

		// Number of concurrent batch processors
		ProcessorCount int `env:"INGEST_PROCESSOR_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"INGEST_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"INGEST_RETRY_DELAY" envDefault:"5"`
	}

	// Notification configuration
	Notify struct {
		// Telegram bot token; alerts are disabled when empty
		BotToken string `env:"TELEGRAM_BOT_TOKEN" envDefault:""`

		// Telegram chat ID to send alerts to
		ChatID string `env:"TELEGRAM_CHAT_ID" envDefault:""`
	}

	// Underwriting assumptions applied by the financial calculator
	Assumptions Assumptions
}

// Assumptions are the fixed underwriting constants used for every property.
// They are injected into the financial calculator at construction so test
// scenarios can swap in alternate assumption sets.
type Assumptions struct {
	// Down payment as a fraction of purchase price
	DownPaymentPct float64 `env:"ASSUME_DOWN_PAYMENT_PCT" envDefault:"0.20"`

	// Annual mortgage interest rate
	InterestRate float64 `env:"ASSUME_INTEREST_RATE" envDefault:"0.07"`

	// Mortgage term in years
	LoanTermYears int `env:"ASSUME_LOAN_TERM_YEARS" envDefault:"30"`

	// Expected vacancy as a fraction of gross rent
	VacancyRate float64 `env:"ASSUME_VACANCY_RATE" envDefault:"0.05"`

	// Maintenance reserve as a fraction of gross rent
	MaintenanceRate float64 `env:"ASSUME_MAINTENANCE_RATE" envDefault:"0.10"`

	// Property management fee as a fraction of gross rent
	ManagementRate float64 `env:"ASSUME_MANAGEMENT_RATE" envDefault:"0.08"`

	// Closing costs as a fraction of purchase price
	ClosingCostPct float64 `env:"ASSUME_CLOSING_COST_PCT" envDefault:"0.03"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultAssumptions returns the standard underwriting constants.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		DownPaymentPct:  0.20,
		InterestRate:    0.07,
		LoanTermYears:   30,
		VacancyRate:     0.05,
		MaintenanceRate: 0.10,
		ManagementRate:  0.08,
		ClosingCostPct:  0.03,
	}
}
