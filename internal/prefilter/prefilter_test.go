package prefilter

import (
	"strings"
	"testing"

	"jobscreen/internal/verdict"
)

func TestCheckMatchesIndicators(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		query string
		code  string
	}{
		{
			name:  "telegram contact",
			query: "Great role, contact us on Telegram to get started",
			code:  "OFF_PLATFORM_CONTACT",
		},
		{
			name:  "whatsapp via",
			query: "Apply via WhatsApp for instant consideration",
			code:  "OFF_PLATFORM_CONTACT",
		},
		{
			name:  "training fee",
			query: "You just need to pay a small training fee first",
			code:  "UPFRONT_FEE",
		},
		{
			name:  "equipment deposit",
			query: "Please deposit $200 for your equipment before day one",
			code:  "UPFRONT_FEE",
		},
		{
			name:  "ssn request",
			query: "Send your SSN and a copy of your ID to apply",
			code:  "SENSITIVE_DATA",
		},
		{
			name:  "bank account",
			query: "Provide your bank account details for direct deposit setup now",
			code:  "SENSITIVE_DATA",
		},
		{
			name:  "too good pay",
			query: "Earn $500 per day, no experience needed at all",
			code:  "TOO_GOOD_PAY",
		},
		{
			name:  "hired today",
			query: "You will be hired today, guaranteed",
			code:  "ARTIFICIAL_URGENCY",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Check(tc.query)
			if got == nil {
				t.Fatalf("expected a verdict for %q", tc.query)
			}
			if got.Label != verdict.Fake {
				t.Fatalf("expected Fake, got %s", got.Label)
			}
			found := false
			for _, reason := range got.Reasons {
				if strings.Contains(reason, tc.code) {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected reason citing %s, got %v", tc.code, got.Reasons)
			}
		})
	}
}

func TestCheckMultipleIndicators(t *testing.T) {
	got := Check("Pay $500 training fee via Telegram, hired today, no interview")
	if got == nil {
		t.Fatal("expected a verdict")
	}
	if got.Label != verdict.Fake {
		t.Fatalf("expected Fake, got %s", got.Label)
	}
	if len(got.Reasons) < 2 {
		t.Fatalf("expected several matched rules, got %v", got.Reasons)
	}
	if len(got.Reasons) > verdict.MaxReasons {
		t.Fatalf("reasons exceed cap: %v", got.Reasons)
	}
}

func TestCheckCleanPostingPasses(t *testing.T) {
	t.Parallel()

	queries := []string{
		"Software Engineer at Acme Corp, apply via Workday.",
		"Senior Accountant position, hybrid, competitive salary, standard interview process.",
		"We offer training to all new employees during onboarding.",
		"",
	}
	for _, q := range queries {
		if got := Check(q); got != nil {
			t.Fatalf("expected no verdict for %q, got %v", q, got)
		}
	}
}
