package skillindia

import (
	"time"

	"jobclassify-engine/internal/domain"
)

// SamplePostings is the fixed set served when the live site yields nothing.
func SamplePostings(now time.Time) []domain.Posting {
	samples := []domain.Posting{
		{Title: "Electrician - Residential Wiring", Location: "Mumbai",
			Description: "Experienced electrician needed for residential wiring projects in Mumbai. Must have 2+ years experience with house wiring, electrical installations, and troubleshooting. Salary ₹15,000-25,000 per month."},
		{Title: "Truck Driver - Long Distance", Location: "Pune",
			Description: "Heavy vehicle driver required for goods transportation across Maharashtra and Gujarat. Valid heavy vehicle license mandatory. Experience in long-distance driving preferred. Salary ₹18,000-22,000."},
		{Title: "Plumber - Commercial Buildings", Location: "Delhi",
			Description: "Skilled plumber needed for commercial building maintenance in Delhi NCR. Experience with pipe fitting, leak repairs, and bathroom installations required. Salary ₹16,000-20,000."},
		{Title: "Housekeeping Staff", Location: "Bangalore",
			Description: "Housekeeping staff required for office cleaning and maintenance in Bangalore. Daily cleaning, sanitization, and basic maintenance tasks. Salary ₹12,000-15,000."},
		{Title: "AC Technician", Location: "Chennai",
			Description: "Air conditioning technician needed for installation and repair services in Chennai. Experience with split AC, window AC, and central AC systems. Salary ₹20,000-28,000."},
		{Title: "Auto Rickshaw Driver", Location: "Hyderabad",
			Description: "Auto rickshaw drivers needed in Hyderabad. Own vehicle preferred but not mandatory. Good knowledge of city routes required. Daily earnings ₹800-1200."},
		{Title: "Construction Worker", Location: "Ahmedabad",
			Description: "Construction workers needed for residential building project in Ahmedabad. Experience in masonry, concrete work, and general construction. Daily wage ₹500-700."},
		{Title: "Security Guard", Location: "Kolkata",
			Description: "Security guards required for corporate offices in Kolkata. 12-hour shifts, basic security training provided. Must be physically fit. Salary ₹14,000-18,000."},
		{Title: "Delivery Boy - Food", Location: "Jaipur",
			Description: "Food delivery executives needed in Jaipur. Own two-wheeler required. Flexible working hours, incentive-based earnings. Daily earnings ₹600-1000."},
		{Title: "Carpenter - Furniture Making", Location: "Lucknow",
			Description: "Skilled carpenter required for furniture manufacturing unit in Lucknow. Experience in wood working, furniture assembly, and finishing. Salary ₹17,000-23,000."},
	}
	for i := range samples {
		samples[i].ID = int64(i + 1)
		samples[i].Source = Source
		samples[i].ScrapedAt = now
	}
	return samples
}
