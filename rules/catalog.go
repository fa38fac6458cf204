package rules

// The shipped catalog mirrors the payment-gateway security-audit checklist
// the validator was built for. IDs are stable; consumers key report rows and
// stored results off them.

var baseChecklist = []ChecklistRule{
	{
		ID:          "check_01_database",
		Label:       "1) Maintain database to store the transaction details / status (YES)",
		KeywordsAll: []string{"maintain", "database", "transaction", "status"},
		Category:    "checklist",
		RequireYes:  true,
		Hint:        "Confirm the checklist explicitly documents database retention with a YES acknowledgement.",
	},
	{
		ID:          "check_02_payment_confirmation",
		Label:       "2) Services / payment confirmation to customer / user provided on basis of database status (YES)",
		KeywordsAll: []string{"payment", "confirmation", "database", "status"},
		Category:    "checklist",
		RequireYes:  true,
		Hint:        "Validate customer confirmation derives from database status and is marked YES.",
	},
	{
		ID:          "check_03_audit_transactions",
		Label:       "3) 7-8 transactions performed in the Security Audit process (YES)",
		KeywordsAll: []string{"7-8", "transactions", "security", "audit"},
		Category:    "checklist",
		RequireYes:  true,
	},
	{
		ID:          "check_04_login_credentials",
		Label:       "4) Login credentials available till audit completion (YES)",
		KeywordsAll: []string{"login", "credentials", "audit", "completion"},
		Category:    "checklist",
		RequireYes:  true,
	},
	{
		ID:          "check_05_no_purge",
		Label:       "5) Database records not cleared till audit completion (YES)",
		KeywordsAll: []string{"do", "not", "clear", "database", "records"},
		Category:    "checklist",
		RequireYes:  true,
	},
	{
		ID:          "check_06_uat_parity",
		Label:       "6) Provided UAT setup identical to production setup (YES)",
		KeywordsAll: []string{"uat", "identical", "production", "setup"},
		Category:    "checklist",
		RequireYes:  true,
	},
	{
		ID:          "check_07_dual_inquiry",
		Label:       "7) Dual inquiry Status API implemented in response (YES)",
		KeywordsAll: []string{"dual", "inquiry", "status", "api"},
		Category:    "checklist",
		RequireYes:  true,
	},
	{
		ID:          "check_08_audit_checklist",
		Label:       "8) Audit checklist implemented for integration & security audit (YES)",
		KeywordsAll: []string{"audit", "checklist", "integration", "security"},
		Category:    "checklist",
		RequireYes:  true,
	},
}

var textExpectations = []TextExpectation{
	{
		ID:          "brand_hdfc_collectnow",
		Label:       "Document references HDFC CollectNow branding",
		KeywordsAll: []string{"hdfc", "collect", "now"},
		Category:    "branding",
		Hint:        "Ensure the document explicitly mentions HDFC CollectNow branding.",
	},
	{
		ID:          "brand_color_palette",
		Label:       "Brand color palette mentioned (blue & red)",
		KeywordsAll: []string{"red"},
		KeywordsAny: []string{"blue", "navy"},
		Category:    "branding",
		Hint:        "Look for narrative confirming the red/blue brand palette.",
	},
	{
		ID:          "api_checkout_embedded",
		Label:       "Checkout embed URL documented",
		KeywordsAll: []string{"api.razorpay.com/v1/checkout/embedded"},
		Category:    "api",
		Hint:        "URL must appear exactly as api.razorpay.com/v1/checkout/embedded.",
	},
	{
		ID:          "api_status_endpoint",
		Label:       "Status API endpoint referenced",
		KeywordsAll: []string{"api"},
		KeywordsAny: []string{"/v1/status", "status api"},
		Category:    "api",
	},
	{
		ID:          "screenshot_payment_success",
		Label:       "Payment success scenario documented",
		KeywordsAny: []string{"payment success", "transaction success", "success status"},
		Category:    "screenshots",
	},
	{
		ID:          "screenshot_payment_failure",
		Label:       "Payment failure scenario documented",
		KeywordsAny: []string{"payment failure", "transaction failure", "failed status"},
		Category:    "screenshots",
	},
}

var requestFields = FieldBundle{
	ID:    "request_payload",
	Label: "Request payload includes mandatory parameters",
	Fields: []string{
		"merchant_id",
		"order_id",
		"amount",
		"currency",
		"payment_capture",
		"callback_url",
		"customer_id",
		"customer_email",
	},
	Category: "api-contract",
	Hint:     "Confirm sample requests in the document include the mandatory Razorpay CollectNow parameters.",
}

var responseFields = FieldBundle{
	ID:    "response_payload",
	Label: "Response payload includes mandatory parameters",
	Fields: []string{
		"payment_id",
		"order_id",
		"status",
		"signature",
		"amount",
		"currency",
		"acquirer_data",
		"method",
	},
	Category: "api-contract",
	Hint:     "Confirm sample responses list identifiers, status, and signature for verification.",
}

var imageExpectations = []ImageTextExpectation{
	{
		ID:           "visual_logo",
		Label:        "HDFC SmartCollect branding visible",
		Description:  "Screenshots include the HDFC SmartCollect or CollectNow branding.",
		KeywordsAny:  []string{"hdfc smartcollect", "smart collect", "collectnow", "collect now"},
		ThresholdAny: 70,
		Category:     "visual",
		Hint:         "Ensure the UI captures the CollectNow logo or wording in uploaded evidence.",
	},
	{
		ID:           "visual_checkout_url",
		Label:        "Checkout embed URL displayed",
		Description:  "Screenshots show the Razorpay checkout embed URL.",
		KeywordsAll:  []string{"api.razorpay.com"},
		KeywordsAny:  []string{"/v1/checkout/embedded", "checkout embedded", "checkout/embedded"},
		ThresholdAll: 60,
		ThresholdAny: 60,
		Category:     "visual",
		Hint:         "Capture the browser bar that includes api.razorpay.com/v1/checkout/embedded.",
	},
	{
		ID:          "visual_payment_success",
		Label:       "Payment success screen present",
		Description: "Screenshots contain wording indicating a successful payment.",
		KeywordsAny: []string{
			"payment success",
			"payment successful",
			"transaction success",
			"payment completed",
			"success status",
			"successful payment",
			"payment processed successfully",
		},
		ThresholdAny: 70,
		Category:     "visual",
		Hint:         "Include confirmation screens that clearly proclaim a successful transaction.",
	},
	{
		ID:          "visual_payment_failure",
		Label:       "Payment failure screen present",
		Description: "Screenshots contain wording indicating a failed payment.",
		KeywordsAny: []string{
			"payment failure",
			"payment failed",
			"transaction failed",
			"failure status",
			"error processing payment",
			"payment could not be processed",
		},
		ThresholdAny: 70,
		Category:     "visual",
		Hint:         "Include failure experience evidence with explicit failure strings.",
	},
}

// DefaultCatalog returns the built-in catalog. The result shares the
// package-level slices and must be treated as read-only.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Checklist:         baseChecklist,
		TextExpectations:  textExpectations,
		RequestFields:     requestFields,
		ResponseFields:    responseFields,
		ImageExpectations: imageExpectations,
	}
}
