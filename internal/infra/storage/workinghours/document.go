package workinghours

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

const (
	kindSpecialEvent = "special_event"
	kindSpecialDate  = "special_date"
	kindFixed        = "fixed"
)

// document корневой YAML документ. Правила декодируются по полю kind.
type document struct {
	Rules []yaml.Node `yaml:"rules"`
}

type ruleHeader struct {
	Kind string `yaml:"kind"`
}

type specialEventDTO struct {
	Name     string       `yaml:"name"`
	Priority int          `yaml:"priority"`
	Dates    []types.Date `yaml:"dates"`
	Rule     dayRuleDTO   `yaml:"rule"`
}

type specialDateDTO struct {
	Date types.Date `yaml:"date"`
	Rule dayRuleDTO `yaml:"rule"`
}

type fixedRuleDTO struct {
	Weekday *int       `yaml:"weekday"`
	Rule    dayRuleDTO `yaml:"rule"`
}

type dayRuleDTO struct {
	IsActive       bool              `yaml:"is_active"`
	WorkingPeriods []timeRangeDTO    `yaml:"working_periods"`
	CutoffTime     *types.TimeString `yaml:"cutoff_time"`
	HasSurcharge   bool              `yaml:"has_surcharge"`
	Surcharge      *surchargeDTO     `yaml:"surcharge"`
	Notes          *string           `yaml:"notes"`
}

type timeRangeDTO struct {
	Start types.TimeString `yaml:"start"`
	End   types.TimeString `yaml:"end"`
}

type amountDTO struct {
	Value decimal.Decimal `yaml:"value"`
	Kind  string          `yaml:"kind"`
}

type surchargeDTO struct {
	Description       string        `yaml:"description"`
	Amount            amountDTO     `yaml:"amount"`
	TimeRange         *timeRangeDTO `yaml:"time_range"`
	ProfessionalShare *amountDTO    `yaml:"professional_share"`
}

// Parse декодирует YAML документ в конфигурацию рабочих часов.
// Порядок правил сохраняется - от него зависит выбор при равных приоритетах.
func Parse(data []byte) (*domain.WorkingHoursConfig, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	cfg := &domain.WorkingHoursConfig{Rules: make([]domain.RuleEntry, 0, len(doc.Rules))}
	for i := range doc.Rules {
		entry, err := decodeRule(&doc.Rules[i])
		if err != nil {
			return nil, fmt.Errorf("rule #%d (line %d): %w", i, doc.Rules[i].Line, err)
		}
		cfg.Rules = append(cfg.Rules, entry)
	}

	return cfg, nil
}

func decodeRule(node *yaml.Node) (domain.RuleEntry, error) {
	var header ruleHeader
	if err := node.Decode(&header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	switch header.Kind {
	case kindSpecialEvent:
		var dto specialEventDTO
		if err := node.Decode(&dto); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		if len(dto.Dates) == 0 {
			return nil, fmt.Errorf("%w: special event %q has no dates", ErrInvalidRule, dto.Name)
		}
		rule, err := dto.Rule.toDomain()
		if err != nil {
			return nil, err
		}
		return domain.SpecialEvent{Name: dto.Name, Dates: dto.Dates, Priority: dto.Priority, Rule: rule}, nil

	case kindSpecialDate:
		var dto specialDateDTO
		if err := node.Decode(&dto); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		if dto.Date.IsZero() {
			return nil, fmt.Errorf("%w: special date without date", ErrInvalidRule)
		}
		rule, err := dto.Rule.toDomain()
		if err != nil {
			return nil, err
		}
		return domain.SpecialDate{Date: dto.Date, Rule: rule}, nil

	case kindFixed:
		var dto fixedRuleDTO
		if err := node.Decode(&dto); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		if dto.Weekday == nil || *dto.Weekday < 0 || *dto.Weekday > 6 {
			return nil, fmt.Errorf("%w: weekday must be 0..6", ErrInvalidRule)
		}
		rule, err := dto.Rule.toDomain()
		if err != nil {
			return nil, err
		}
		return domain.FixedRule{Weekday: *dto.Weekday, Rule: rule}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, header.Kind)
	}
}

func (d dayRuleDTO) toDomain() (domain.DayRule, error) {
	rule := domain.DayRule{
		IsActive:       d.IsActive,
		WorkingPeriods: make([]domain.TimeRange, 0, len(d.WorkingPeriods)),
		CutoffTime:     d.CutoffTime,
		HasSurcharge:   d.HasSurcharge,
		Notes:          d.Notes,
	}

	for _, p := range d.WorkingPeriods {
		if !p.Start.IsBefore(p.End) {
			return domain.DayRule{}, fmt.Errorf("%w: working period %s-%s is empty", ErrInvalidRule, p.Start, p.End)
		}
		rule.WorkingPeriods = append(rule.WorkingPeriods, domain.TimeRange{Start: p.Start, End: p.End})
	}

	if d.Surcharge != nil {
		amount, err := d.Surcharge.Amount.toDomain()
		if err != nil {
			return domain.DayRule{}, err
		}
		s := &domain.Surcharge{Description: d.Surcharge.Description, Amount: amount}
		if tr := d.Surcharge.TimeRange; tr != nil {
			s.TimeRange = &domain.TimeRange{Start: tr.Start, End: tr.End}
		}
		if ps := d.Surcharge.ProfessionalShare; ps != nil {
			share, err := ps.toDomain()
			if err != nil {
				return domain.DayRule{}, err
			}
			s.ProfessionalShare = &share
		}
		rule.Surcharge = s
	}

	return rule, nil
}

func (a amountDTO) toDomain() (domain.Amount, error) {
	kind := domain.AmountKind(a.Kind)
	if kind != domain.AmountFixed && kind != domain.AmountPercent {
		return domain.Amount{}, fmt.Errorf("%w: amount kind %q", ErrInvalidRule, a.Kind)
	}
	if a.Value.IsNegative() {
		return domain.Amount{}, fmt.Errorf("%w: negative amount %s", ErrInvalidRule, a.Value)
	}
	return domain.Amount{Value: a.Value, Kind: kind}, nil
}
