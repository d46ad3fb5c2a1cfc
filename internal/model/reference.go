package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString accepts either a JSON string or a JSON number and keeps the
// textual form for display.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var parts []any
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		strs := make([]string, len(parts))
		for i, p := range parts {
			if n, ok := p.(float64); ok {
				strs[i] = strconv.FormatFloat(n, 'f', -1, 64)
			} else {
				b, _ := json.Marshal(p)
				strs[i] = strings.Trim(string(b), `"`)
			}
		}
		*f = FlexString("(" + strings.Join(strs, ", ") + ")")
		return nil
	}
	*f = FlexString(strings.TrimSpace(string(data)))
	return nil
}

func (f FlexString) String() string { return string(f) }

// ModelMetrics is one ticker's entry in metrics.json.
type ModelMetrics struct {
	R2   float64 `json:"r2"`
	MAE  float64 `json:"mae"`
	MAPE float64 `json:"mape"`
	RMSE float64 `json:"rmse"`
}

// MinMax is a normalised value range.
type MinMax struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SplitDetails describes the chronological train/test split.
type SplitDetails struct {
	SplitDate string     `json:"split_date"`
	TrainRows int        `json:"train_rows"`
	TestRows  int        `json:"test_rows"`
	TrainPct  FlexString `json:"train_pct"`
	TestPct   FlexString `json:"test_pct"`
}

// BaselinePerf is the untuned model's performance.
type BaselinePerf struct {
	TrainR2 float64 `json:"train_r2"`
	TestR2  float64 `json:"test_r2"`
	MAE     float64 `json:"mae"`
	Time    float64 `json:"time"`
}

// TuningResults is the tuned model's performance.
type TuningResults struct {
	FinalR2     float64               `json:"final_r2"`
	Improvement float64               `json:"improvement"`
	BestParams  map[string]FlexString `json:"best_params"`
}

// ScoreSet groups regression scores for one data split.
type ScoreSet struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
	MAPE float64 `json:"mape"`
}

// ComprehensiveMetrics holds test scores and the train/test gap verdict.
type ComprehensiveMetrics struct {
	Train       ScoreSet `json:"train"`
	Test        ScoreSet `json:"test"`
	GapAnalysis struct {
		Status string `json:"status"`
	} `json:"gap_analysis"`
}

// FeatureWeight is one ranked feature.
type FeatureWeight struct {
	Feature    string  `json:"Feature"`
	Importance float64 `json:"Importance"`
	Percentage float64 `json:"Percentage"`
}

// FeatureImportance is the per-bank importance ranking.
type FeatureImportance struct {
	Top5Contribution float64         `json:"top_5_contribution"`
	Features80Count  int             `json:"features_80_count"`
	Top10            []FeatureWeight `json:"top_10"`
}

// GlobalImportance is the cross-bank importance summary.
type GlobalImportance struct {
	ReportGenDate string `json:"report_gen_date"`
	TopCategory   struct {
		Name       string  `json:"name"`
		Percentage float64 `json:"percentage"`
	} `json:"top_category"`
	MostConsistent     []string `json:"most_consistent"`
	ReductionPotential struct {
		To FlexString `json:"to"`
	} `json:"reduction_potential"`
}

// DatasetSummary is one ticker's entry in data_summary.json.
// Every section is optional; pages skip what is absent.
type DatasetSummary struct {
	File                 string                        `json:"file"`
	Rows                 int                           `json:"rows"`
	Columns              []string                      `json:"columns"`
	DateRange            string                        `json:"date_range"`
	PriceRange           FlexString                    `json:"price_range"`
	AvgVolume            FlexString                    `json:"avg_volume"`
	MissingValues        FlexString                    `json:"missing_values"`
	Status               string                        `json:"status"`
	Shape                FlexString                    `json:"shape"`
	Duplicates           FlexString                    `json:"duplicates"`
	DescStats            map[string]map[string]float64 `json:"desc_stats"`
	NormVerification     map[string]MinMax             `json:"norm_verification"`
	SplitDetails         *SplitDetails                 `json:"split_details"`
	SplitStats           map[string]map[string]float64 `json:"split_stats"`
	BaselinePerf         *BaselinePerf                 `json:"baseline_perf"`
	TuningResults        *TuningResults                `json:"tuning_results"`
	ComprehensiveMetrics *ComprehensiveMetrics         `json:"comprehensive_metrics"`
	FeatureImportance    *FeatureImportance            `json:"feature_importance"`
	GlobalImportance     *GlobalImportance             `json:"global_importance"`
}
