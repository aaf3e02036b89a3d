// README: Markdown scrubbing for model-produced strings.
package itinerary

import "strings"

// cleanMarkdown removes common Markdown formatting characters from a string
// and collapses runs of whitespace.
func cleanMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"***", "",
		"**", "",
		"*", "",
		"##", "",
		"#", "",
		"- ", "",
	)
	text = replacer.Replace(text)
	return strings.Join(strings.Fields(text), " ")
}

// cleanPlan scrubs every string field of a plan in place.
func cleanPlan(p *Plan) {
	p.GeneralInfo.CurrencyConversion = cleanMarkdown(p.GeneralInfo.CurrencyConversion)
	p.GeneralInfo.TravelInsuranceTips = cleanMarkdown(p.GeneralInfo.TravelInsuranceTips)
	p.GeneralInfo.ApproxTaxiCosts = cleanMarkdown(p.GeneralInfo.ApproxTaxiCosts)
	p.GeneralInfo.OtherTips = cleanMarkdown(p.GeneralInfo.OtherTips)

	for i := range p.Days {
		d := &p.Days[i]
		d.Title = cleanMarkdown(d.Title)
		d.Lodging = cleanMarkdown(d.Lodging)
		for j := range d.Activities {
			d.Activities[j].Slot = cleanMarkdown(d.Activities[j].Slot)
			d.Activities[j].Description = cleanMarkdown(d.Activities[j].Description)
		}
		for j := range d.Meals {
			d.Meals[j] = cleanMarkdown(d.Meals[j])
		}
	}
}
