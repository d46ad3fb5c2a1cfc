package dashboard

// SectionKind selects how a section's data is bound.
type SectionKind int

const (
	// KindText renders only the static bullets and images.
	KindText SectionKind = iota
	KindHeadline
	KindDatasetDetail
	KindCleaning
	KindScaling
	KindSplit
	KindTuning
	KindScores
	KindFeatureImportance
	KindFIReport
	KindLive
)

// Section is one block of a page. Images are catalog patterns; any that
// resolve to nothing are skipped without a message.
type Section struct {
	Title   string
	Kind    SectionKind
	Bullets []string
	Images  []string
	Caption string
}

// Tab groups sections under one heading.
type Tab struct {
	Name     string
	Sections []Section
}

// Page is one entry of the sidebar menu.
type Page struct {
	Index int
	Title string
	// Heading may contain %s for the selected ticker.
	Heading string
	Tabs    []Tab
}

// Pages is the dashboard menu, in order.
var Pages = []Page{
	{
		Index:   0,
		Title:   "0. Project Summary",
		Heading: "Random Forest Regression for Indonesian Bank Stock Prices",
		Tabs: []Tab{{Sections: []Section{
			{
				Title: "Research goals",
				Kind:  KindText,
				Bullets: []string{
					"Predict the share price of five large banks (BCA, BRI, Mandiri, BNI, BTN).",
					"Reach an R² score of at least 0.85.",
					"Identify the most influential technical features.",
				},
			},
			{Title: "Headline result (%s)", Kind: KindHeadline},
		}}},
	},
	{
		Index:   1,
		Title:   "1. Data Collection",
		Heading: "Stage 1: Historical Data Collection",
		Tabs: []Tab{{Sections: []Section{
			{
				Title: "Activity summary",
				Kind:  KindText,
				Bullets: []string{
					"Source: Yahoo Finance daily quotes.",
					"Period: 17 October 2022 to 17 October 2025 (3 years).",
					"Format: CSV (_raw.csv) with Date, Open, High, Low, Close, Adj Close, Volume.",
				},
			},
			{Title: "Dataset detail: %s", Kind: KindDatasetDetail},
			{
				Title:  "Raw data overview",
				Kind:   KindText,
				Images: []string{"**/01_Analisis_Data_Mentah.png"},
				Bullets: []string{
					"Closing price is the prediction target.",
					"Volume tracks liquidity; spikes often coincide with volatility.",
					"The price histogram shows where the share traded over three years.",
				},
			},
		}}},
	},
	{
		Index:   2,
		Title:   "2. Preprocessing",
		Heading: "Stage 2: Preprocessing and Feature Engineering",
		Tabs: []Tab{
			{Name: "Data cleaning", Sections: []Section{
				{
					Title: "Data cleaning: %s",
					Kind:  KindCleaning,
					Bullets: []string{
						"Missing values from exchange holidays are located.",
						"Gaps are imputed with forward fill then backward fill.",
						"Adj Close and unnamed columns are dropped.",
					},
					Images:  []string{"**/02_Komparasi_Data_Cleaning.png"},
					Caption: "Raw series with gaps (left) against the cleaned continuous series (right).",
				},
			}},
			{Name: "Feature engineering", Sections: []Section{
				{
					Title: "22 technical indicators",
					Kind:  KindText,
					Bullets: []string{
						"Trend: SMA and EMA over 5 to 20 days.",
						"Momentum: RSI and MACD.",
						"Volatility: Bollinger Bands.",
						"Other: volume MA, daily return, high-low range.",
					},
					Images:  []string{"**/03_Technical_Indicators_{ticker}.png"},
					Caption: "The technical features used as Random Forest predictors for %s.",
				},
			}},
			{Name: "Scaling", Sections: []Section{
				{
					Title: "MinMaxScaler normalisation",
					Kind:  KindScaling,
					Bullets: []string{
						"Every feature is scaled into [0, 1] so volume and price carry comparable weight.",
					},
				},
				{
					Title:  "Distribution and outliers: %s",
					Kind:   KindText,
					Images: []string{"**/05_Distribusi_{ticker}.png"},
				},
			}},
			{Name: "Splitting", Sections: []Section{
				{
					Title: "Train and test split",
					Kind:  KindSplit,
					Bullets: []string{
						"A chronological time-series split keeps the test period strictly after training.",
					},
					Images:  []string{"**/06_Visualisasi_Pembagian_Pelatihan_Uji.png"},
					Caption: "Blue (80%) is training history, orange (20%) is the held-out future.",
				},
			}},
		},
	},
	{
		Index:   3,
		Title:   "3. Model Evaluation",
		Heading: "Stage 3: Model Evaluation: %s",
		Tabs: []Tab{
			{Name: "Training and tuning", Sections: []Section{
				{Title: "Model build and tuning: %s", Kind: KindTuning},
				{
					Title:   "K-fold cross-validation",
					Kind:    KindText,
					Images:  []string{"**/08_Skor_Cross_Validation.png"},
					Caption: "Even bars across folds indicate a stable model.",
				},
			}},
			{Name: "Test predictions", Sections: []Section{
				{
					Title: "Predictions on the test set: %s",
					Kind:  KindText,
					Images: []string{
						"**/09_Prediction_{ticker}.png",
						"**/11_Scatter_Aktual_vs_Prediksi.png",
						"**/12_Residual_Analysis.png",
						"**/13_Perbandingan_Error_Metrics.png",
						"**/14_Full_Timeline_{ticker}.png",
					},
				},
			}},
			{Name: "Scores", Sections: []Section{
				{
					Title:  "Comprehensive evaluation: %s",
					Kind:   KindScores,
					Images: []string{"**/15_Metrik_Evaluasi_Model.png", "**/17_Performa_Train_vs_Test.png"},
				},
			}},
			{Name: "Feature importance", Sections: []Section{
				{
					Title:  "Per-bank analysis",
					Kind:   KindFeatureImportance,
					Images: []string{"**/18_Feature_Importance_{ticker}.png", "**/20_Category_Importance_Analysis.png"},
				},
				{
					Title:  "Sector and consistency",
					Kind:   KindText,
					Images: []string{"**/19_Feature_Importance_Comparison.png", "**/21_Feature_Consistency_Analysis.png"},
				},
				{Title: "Comprehensive report", Kind: KindFIReport},
			}},
		},
	},
	{
		Index:   4,
		Title:   "4. Live Demo",
		Heading: "Live Trading and Technical Analysis: %s",
		Tabs:    []Tab{{Sections: []Section{{Title: "Integrated analysis", Kind: KindLive}}}},
	},
}

// PageByIndex looks up a page.
func PageByIndex(i int) (Page, bool) {
	for _, p := range Pages {
		if p.Index == i {
			return p, true
		}
	}
	return Page{}, false
}
