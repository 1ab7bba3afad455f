package utils

// Reply and notification texts. Formatted with fmt.Sprintf.
const (
	MSG_WELCOME = "✈️ Flight price tracker active\n\n" +
		"Commands:\n" +
		"• ADD [FLIGHT] [DATE] [ORIGIN] [DEST] e.g. ADD FR1234 2026-05-20 VNO BVA\n" +
		"• ADD [FLIGHT] [DATE] to look the route up for you\n" +
		"• ADD [FLIGHT] and send the date and route next\n" +
		"• DELETE [FLIGHT] to stop tracking a flight\n" +
		"• LIST to see your tracked flights\n" +
		"• CLEAR to delete all your tracks\n" +
		"• CANCEL to abort a pending ADD\n" +
		"• HELP for details"

	MSG_HELP = "📌 How to add a flight\n\n" +
		"Send a line in this format:\n" +
		"ADD [flight code] [date] [origin] [destination]\n\n" +
		"• Flight code: e.g. FR1234 or FR 1234\n" +
		"• Date: departure date YYYY-MM-DD (e.g. 2026-05-20)\n" +
		"• Origin: 3-letter airport code (e.g. VNO for Vilnius)\n" +
		"• Destination: 3-letter airport code (e.g. BVA for Paris Beauvais)\n\n" +
		"Example:\n" +
		"ADD FR1234 2026-05-20 VNO BVA\n\n" +
		"If you only know the flight and date, send ADD FR1234 2026-05-20 and the route is searched for you."

	MSG_USAGE_ADD         = "Usage: ADD [FLIGHT] [YYYY-MM-DD] [ORIGIN] [DEST]\nExample: ADD FR1234 2026-05-20 VNO BVA"
	MSG_USAGE_DELETE      = "Usage: DELETE [FLIGHT]\nExample: DELETE FR1234"
	MSG_USAGE_BARE        = "Usage: %s (no arguments)"
	MSG_UNKNOWN           = "Sorry, I did not understand that. Send HELP to see the commands."
	MSG_ASK_ROUTE         = "Tracking %s. Now send the date and route in one line: [YYYY-MM-DD] [ORIGIN] [DEST]\nExample: 2026-05-20 VNO BVA\nSend CANCEL to abort."
	MSG_REPROMPT_ROUTE    = "Still waiting for the date and route for %s: [YYYY-MM-DD] [ORIGIN] [DEST]\nExample: 2026-05-20 VNO BVA\nSend CANCEL to abort."
	MSG_TRACKING          = "✅ Now tracking %s (%s→%s) on %s. Price: %.2f %s"
	MSG_DELETED           = "Deleted %d tracked flight(s) for %s."
	MSG_CLEARED           = "All your tracking data has been deleted."
	MSG_CANCELLED         = "Pending ADD for %s cancelled."
	MSG_NOTHING_TO_CANCEL = "Nothing to cancel."
	MSG_EMPTY_LIST        = "You are not tracking any flights."
	MSG_LIST_HEADER       = "📋 Your tracked flights:"
	MSG_LIST_ITEM         = "• %s: %s->%s on %s (Last price: %.2f %s)"

	MSG_PRICE_CHANGE = "🔔 PRICE CHANGE! %s\n" +
		"Flight: %s (%s -> %s)\n" +
		"Date: %s\n" +
		"New Price: %.2f %s (was %.2f %s)"
)
