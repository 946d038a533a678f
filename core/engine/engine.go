// Package engine orchestrates the analysis pipeline: parse, simulate,
// evaluate policies. All other interfaces (CLI, HTTP, CI) are thin
// wrappers around this engine.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"finopsguard/core/parser"
	"finopsguard/core/policy"
	"finopsguard/core/pricing"
	"finopsguard/core/simulator"
	"finopsguard/core/types"
	"finopsguard/internal/config"
	"finopsguard/internal/errors"
	"finopsguard/internal/logging"

	// Extractor registration
	_ "finopsguard/clouds/aws"
	_ "finopsguard/clouds/azure"
	_ "finopsguard/clouds/gcp"

	// Parser registration
	_ "finopsguard/core/parser/ansible"
	_ "finopsguard/core/parser/terraform"
)

// Engine runs end-to-end analyses
type Engine struct {
	resolver  *pricing.Resolver
	simulator *simulator.Simulator
	timeout   time.Duration
}

// New builds an engine from configuration and optional live pricing
// clients
func New(cfg *config.Config, clients ...pricing.LiveClient) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	defaultPrice, err := decimal.NewFromString(cfg.Pricing.DefaultHourlyPrice)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "invalid default hourly price", err)
	}

	opts := pricing.Options{
		LiveEnabled:           cfg.Pricing.LiveEnabled,
		StaticFallbackEnabled: cfg.Pricing.StaticFallbackEnabled,
		DefaultHourlyPrice:    defaultPrice,
		LiveCallTimeout:       cfg.Pricing.LiveCallTimeout(),
		LiveTTL:               cfg.Pricing.LiveTTL(),
		StaticTTL:             cfg.Pricing.StaticTTL(),
		DefaultTTL:            cfg.Pricing.DefaultTTL(),
	}

	resolver := pricing.NewResolver(opts, clients...)
	return &Engine{
		resolver:  resolver,
		simulator: simulator.New(resolver, cfg.Engine.MaxPricingConcurrency),
		timeout:   cfg.Engine.RequestTimeout(),
	}, nil
}

// AnalysisRequest is the input to an analysis
type AnalysisRequest struct {
	// Format selects the IaC parser: "terraform" or "ansible"
	Format types.IaCFormat

	// Payload is the raw IaC source
	Payload []byte

	// Environment is the deployment target for policy evaluation
	Environment string

	// Budget triggers the over_budget risk flag when exceeded
	Budget *types.BudgetRules

	// Policies are evaluated in order against the simulation
	Policies []policy.Policy
}

// AnalysisResult is the output of an analysis
type AnalysisResult struct {
	// RequestID identifies the analysis for correlation
	RequestID string

	// Model is the parsed canonical resource model
	Model *types.CanonicalResourceModel

	// Simulation is the cost estimate
	Simulation *types.SimulationResult

	// PolicyEval aggregates per-policy outcomes; nil when no policies
	// were supplied
	PolicyEval *policy.EvaluationOutcome

	// Duration is the wall time of the whole analysis
	Duration time.Duration
}

// Analyze runs the full pipeline under the request execution budget.
// Parse errors fail the analysis; pricing degradation does not.
func (e *Engine) Analyze(ctx context.Context, req *AnalysisRequest) (*AnalysisResult, error) {
	start := time.Now()
	requestID := uuid.New().String()

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	log := logging.With(zap.String("request_id", requestID))

	model, err := parser.Parse(ctx, req.Format, req.Payload)
	if err != nil {
		log.Error("parse failed", zap.Error(err))
		return nil, err
	}
	log.Info("parsed resource model",
		zap.String("format", string(req.Format)),
		zap.Int("resources", model.Len()))

	sim, err := e.simulator.Simulate(ctx, model, req.Budget)
	if err != nil {
		log.Error("simulation failed", zap.Error(err))
		return nil, err
	}
	log.Info("simulation complete",
		zap.String("monthly_cost", sim.EstimatedMonthlyCost.StringFixed(2)),
		zap.String("confidence", string(sim.PricingConfidence)))

	result := &AnalysisResult{
		RequestID:  requestID,
		Model:      model,
		Simulation: sim,
	}

	if len(req.Policies) > 0 {
		result.PolicyEval = policy.Evaluate(ctx, req.Policies, sim, model, policy.EvalContext{
			Environment: req.Environment,
		})
		log.Info("policy evaluation complete",
			zap.Int("evaluated", len(result.PolicyEval.Results)),
			zap.Int("failed", result.PolicyEval.FailedCount()),
			zap.Bool("blocked", result.PolicyEval.Blocked))
	}

	result.Duration = time.Since(start)
	return result, nil
}

// ResolvePrice resolves a single unit price through the pricing cascade
func (e *Engine) ResolvePrice(ctx context.Context, cloud types.Cloud, sku, region string) (*types.PriceQuote, error) {
	return e.resolver.Resolve(ctx, cloud, sku, region)
}

// FlushPricingCache clears cached price quotes
func (e *Engine) FlushPricingCache() {
	e.resolver.Flush()
}

// PricingCacheSize returns the number of cached quotes
func (e *Engine) PricingCacheSize() int {
	return e.resolver.CacheSize()
}
