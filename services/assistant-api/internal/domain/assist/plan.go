package assist

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dealermate/dealermate-server/pkg/toolvalue"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/intent"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/tools"
)

const (
	recommendTopK  = 3
	compareTopK    = 3
	kpiRangeMonths = 6
)

// planRun accumulates the payload and the tools actually invoked.
type planRun struct {
	svc     *service
	req     Request
	payload *toolvalue.Map
	used    []string
}

func (r *planRun) execute(ctx context.Context, i intent.Intent) error {
	switch i {
	case intent.Recommend:
		return r.recommend(ctx)
	case intent.Risk:
		return r.risk(ctx)
	case intent.Pricing:
		return r.single(ctx, tools.GetMarketPrice, toolvalue.Pairs("query", r.req.Message), "pricing", pricingSummary)
	case intent.Compare:
		args := toolvalue.Pairs("query", r.req.Message, "top_k", compareTopK)
		return r.single(ctx, tools.CompareListings, args, "compare", compareSummary)
	case intent.KPI:
		args := toolvalue.Pairs("branch_id", r.req.Principal.BranchID, "range_months", kpiRangeMonths)
		return r.single(ctx, tools.GetMonthlySalesStats, args, "kpi", kpiSummary)
	case intent.Followup:
		r.payload.Set("followup", toolvalue.Pairs("kakao", followupKakao, "sms", followupSMS))
		r.payload.Set("summary", toolvalue.String(followupSummary))
	case intent.Negotiation:
		r.payload.Set("negotiation", toolvalue.Pairs("guardrail", negotiationGuardrail, "script", negotiationScript))
		r.payload.Set("summary", toolvalue.String(negotiationSummary))
	}
	return nil
}

// call invokes a tool and appends it to the used list only on success.
func (r *planRun) call(ctx context.Context, tool string, args toolvalue.Value) (toolvalue.Value, error) {
	body, err := r.svc.tools.Call(ctx, tool, args)
	if err != nil {
		return toolvalue.Null(), err
	}
	r.used = append(r.used, tool)
	return tools.Data(body), nil
}

func (r *planRun) single(ctx context.Context, tool string, args toolvalue.Value, key, summary string) error {
	data, err := r.call(ctx, tool, args)
	if err != nil {
		return err
	}
	r.payload.Set(key, data)
	r.payload.Set("summary", toolvalue.String(summary))
	return nil
}

func (r *planRun) recommend(ctx context.Context) error {
	p := r.req.Principal
	tool := tools.SearchListings
	args := toolvalue.Pairs(
		"query", r.req.Message,
		"top_k", recommendTopK,
		"branch_id", p.BranchID,
		"dealer_employee_id", p.EmployeeID,
	)
	if r.req.Filters.Truthy() {
		tool = tools.SearchListingsFiltered
		args.Map().Set("filters", r.req.Filters)
	}

	data, err := r.call(ctx, tool, args)
	if err != nil {
		return err
	}
	r.payload.Set("recommendations", trimRecommendations(data))
	r.payload.Set("summary", toolvalue.String(recommendSummary))
	return nil
}

// trimRecommendations keeps the first recommendTopK listings, whether the
// provider answered with a bare list or with an {items, explain, filters} object.
func trimRecommendations(data toolvalue.Value) toolvalue.Value {
	switch data.Kind() {
	case toolvalue.KindList:
		if items := data.Items(); len(items) > recommendTopK {
			return toolvalue.List(items[:recommendTopK]...)
		}
	case toolvalue.KindMap:
		items := data.Get("items")
		if items.Kind() != toolvalue.KindList || items.Len() <= recommendTopK {
			return data
		}
		m := toolvalue.NewMap()
		for _, k := range data.Keys() {
			m.Set(k, data.Get(k))
		}
		m.Set("items", toolvalue.List(items.Items()[:recommendTopK]...))
		return toolvalue.Object(m)
	}
	return data
}

func (r *planRun) risk(ctx context.Context) error {
	p := r.req.Principal
	plate := ExtractPlate(r.req.Message)

	car, err := r.call(ctx, tools.GetCarByPlate, toolvalue.Pairs(
		"plate", plate,
		"branch_id", p.BranchID,
		"dealer_employee_id", p.EmployeeID,
	))
	if err != nil {
		return err
	}
	if !car.Truthy() {
		car = toolvalue.Object(nil)
	}

	var registry, maintenance toolvalue.Value
	if r.svc.opts.ParallelHistory {
		registry, maintenance, err = r.historyParallel(ctx, plate)
	} else {
		registry, maintenance, err = r.historySequential(ctx, plate)
	}
	if err != nil {
		return err
	}

	r.payload.Set("car", car)
	r.payload.Set("registry", registry)
	r.payload.Set("maintenance", maintenance)
	r.payload.Set("briefing", RiskBriefing(car, registry, maintenance))
	return nil
}

func (r *planRun) historySequential(ctx context.Context, plate string) (toolvalue.Value, toolvalue.Value, error) {
	registry, err := r.call(ctx, tools.GetVehicleRegistry, toolvalue.Pairs("plate", plate))
	if err != nil {
		return toolvalue.Null(), toolvalue.Null(), err
	}
	maintenance, err := r.call(ctx, tools.GetMaintenanceHistory, toolvalue.Pairs("plate", plate))
	if err != nil {
		return toolvalue.Null(), toolvalue.Null(), err
	}
	return registry, maintenance, nil
}

// historyParallel issues both lookups at once and appends them to the used
// list in the sequential order once both succeed.
func (r *planRun) historyParallel(ctx context.Context, plate string) (toolvalue.Value, toolvalue.Value, error) {
	var registryBody, maintenanceBody toolvalue.Value

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		body, err := r.svc.tools.Call(gctx, tools.GetVehicleRegistry, toolvalue.Pairs("plate", plate))
		registryBody = body
		return err
	})
	g.Go(func() error {
		body, err := r.svc.tools.Call(gctx, tools.GetMaintenanceHistory, toolvalue.Pairs("plate", plate))
		maintenanceBody = body
		return err
	})
	if err := g.Wait(); err != nil {
		return toolvalue.Null(), toolvalue.Null(), err
	}

	r.used = append(r.used, tools.GetVehicleRegistry, tools.GetMaintenanceHistory)
	return tools.Data(registryBody), tools.Data(maintenanceBody), nil
}
