package formatter

const StartText = "⛽ *GAS STATION FINDER* ⛽\n\n" +
	"Send a US location and I'll find gas stations nearby.\n\n" +
	"📍 *What you can send:*\n" +
	"• a ZIP code, e.g. `90210`\n" +
	"• up to 10 ZIP codes separated by spaces\n" +
	"• a state code, e.g. `TX`\n" +
	"• a city and state, e.g. `Austin TX`\n\n" +
	"💾 Results come with a CSV file you can download.\n\n" +
	"Type /help for all commands."

const HelpText = "🆘 *HELP* 🆘\n\n" +
	"📋 *Commands:*\n" +
	"/start - Welcome message\n" +
	"/help - This message\n" +
	"/about - About this bot\n" +
	"/example - Usage examples\n" +
	"/commands - Command list\n\n" +
	"📍 *Searching:*\n" +
	"Just send a ZIP code, state code or city and state. No command needed.\n" +
	"Maximum 10 ZIP codes per message."

const AboutText = "ℹ️ *ABOUT* ℹ️\n\n" +
	"• Station data from the Google Places API\n" +
	"• Locations resolved with the Google Geocoding API\n" +
	"• Horizontal CSV export\n" +
	"• Results cached for 30 minutes\n\n" +
	"Send /help for usage instructions."

const ExampleText = "📝 *EXAMPLES* 📝\n\n" +
	"`90210`\n→ gas stations in Beverly Hills, CA\n\n" +
	"`90210 10001 77001`\n→ stations for three ZIP codes in one CSV\n\n" +
	"`TX`\n→ stations around Houston, TX\n\n" +
	"`Austin TX`\n→ stations in Austin, TX\n\n" +
	"📊 *CSV columns:*\n" +
	"Seller Name1, Seller Address1, Seller City1, Seller State1, Seller Zip1, Seller Name2, ..."

const CommandsText = "⚡ *COMMANDS* ⚡\n\n" +
	"/start - Getting started\n" +
	"/help - Help guide\n" +
	"/about - About this bot\n" +
	"/example - Usage examples\n" +
	"/commands - This list\n\n" +
	"Send any location directly to search."

// CommandText returns the canned reply for a bot command and whether it exists.
func CommandText(command string) (string, bool) {
	switch command {
	case "/start":
		return StartText, true
	case "/help":
		return HelpText, true
	case "/about":
		return AboutText, true
	case "/example":
		return ExampleText, true
	case "/commands":
		return CommandsText, true
	}
	return "", false
}
