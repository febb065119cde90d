package i18n

var tables = map[string]map[string]string{
	LangHebrew: {
		// Navigation
		"nav.home":    "בית",
		"nav.about":   "אודות",
		"nav.gallery": "גלריה",
		"nav.map":     "מפת אטרקציות",
		"nav.reviews": "ביקורות",
		"nav.contact": "צור קשר",

		// Hero section
		"hero.title":       "אחוזת האלה",
		"hero.subtitle":    "מתחם אירוח בדרום רמת הגולן",
		"hero.description": "4 יחידות אירוח עם ג'קוזי, בריכה מחוממת וסאונה יבשה בנאות גולן",
		"hero.cta":         "גלה עוד",

		// About section
		"about.title":       "אודותינו",
		"about.description": "אחוזת האלה מציעה צימרים מפנקים לאירוח משפחות וקבוצות, עם שירות אישי ומקצועי.",

		// Gallery section
		"gallery.title":    "גלריה",
		"gallery.subtitle": "הצימרים שלנו",

		// Attractions map
		"map.title":    "אטרקציות בסביבה",
		"map.subtitle": "מה לעשות באזור",

		// Reviews section
		"reviews.title":                      "מה האורחים שלנו אומרים",
		"reviews.total":                      "ביקורות",
		"reviews.retry":                      "נסה שוב",
		"reviews.error.not_configured":       "הצגת הביקורות אינה מוגדרת כעת",
		"reviews.error.invalid_credentials":  "אין גישה לשירות הביקורות",
		"reviews.error.not_found":            "העסק לא נמצא בשירות הביקורות",
		"reviews.error.rate_limited":         "שירות הביקורות עמוס, נסו שוב מאוחר יותר",
		"reviews.error.malformed":            "התקבלה תשובה שגויה משירות הביקורות",
		"reviews.error.cancelled":            "תהליך האישור בוטל",
		"reviews.error.denied":               "הגישה לביקורות נדחתה",
		"reviews.error.network":              "שירות הביקורות אינו זמין כרגע",

		// Contact section
		"contact.title":           "צור קשר",
		"contact.name":            "שם",
		"contact.email":           "אימייל",
		"contact.phone":           "טלפון",
		"contact.message":         "הודעה",
		"contact.send":            "שלח הודעה",
		"contact.address":         "כתובת",
		"contact.phone_label":     "טלפון",
		"contact.email_label":     "אימייל",
		"contact.whatsapp":        "שלח הודעה בווצאפ",
		"contact.sent":            "ההודעה נשלחה, נחזור אליכם בהקדם",
		"contact.error.name":      "נא למלא שם",
		"contact.error.message":   "נא למלא הודעה",
		"contact.error.email":     "כתובת אימייל שגויה",
		"contact.error.reachable": "נא להשאיר טלפון או אימייל",

		// Footer
		"footer.rights": "כל הזכויות שמורות לאחוזת האלה",
		"footer.follow": "עקבו אחרינו",

		// Common
		"common.loading": "טוען...",
		"common.error":   "שגיאה",
		"common.success": "הצלחה",
	},
	LangEnglish: {
		// Navigation
		"nav.home":    "Home",
		"nav.about":   "About",
		"nav.gallery": "Gallery",
		"nav.map":     "Attractions Map",
		"nav.reviews": "Reviews",
		"nav.contact": "Contact",

		// Hero section
		"hero.title":       "Ella Estate",
		"hero.subtitle":    "A guest compound in the southern Golan Heights",
		"hero.description": "4 guest units with jacuzzi, heated pool and dry sauna in Neot Golan",
		"hero.cta":         "Discover More",

		// About section
		"about.title":       "About Us",
		"about.description": "Ella Estate offers pampering cabins for families and groups, with personal and professional service.",

		// Gallery section
		"gallery.title":    "Gallery",
		"gallery.subtitle": "Our Cabins",

		// Attractions map
		"map.title":    "Nearby Attractions",
		"map.subtitle": "Things to do in the area",

		// Reviews section
		"reviews.title":                      "What Our Guests Say",
		"reviews.total":                      "reviews",
		"reviews.retry":                      "Try again",
		"reviews.error.not_configured":       "Review display is not configured",
		"reviews.error.invalid_credentials":  "The review service rejected our access",
		"reviews.error.not_found":            "The business was not found on the review service",
		"reviews.error.rate_limited":         "The review service is busy, please try again later",
		"reviews.error.malformed":            "The review service returned an unexpected answer",
		"reviews.error.cancelled":            "The authorization was cancelled",
		"reviews.error.denied":               "Access to reviews was denied",
		"reviews.error.network":              "The review service is currently unavailable",

		// Contact section
		"contact.title":           "Contact Us",
		"contact.name":            "Name",
		"contact.email":           "Email",
		"contact.phone":           "Phone",
		"contact.message":         "Message",
		"contact.send":            "Send Message",
		"contact.address":         "Address",
		"contact.phone_label":     "Phone",
		"contact.email_label":     "Email",
		"contact.whatsapp":        "Message us on WhatsApp",
		"contact.sent":            "Message sent, we will get back to you shortly",
		"contact.error.name":      "Please enter a name",
		"contact.error.message":   "Please enter a message",
		"contact.error.email":     "Invalid email address",
		"contact.error.reachable": "Please leave a phone number or email",

		// Footer
		"footer.rights": "All rights reserved to Ella Estate",
		"footer.follow": "Follow Us",

		// Common
		"common.loading": "Loading...",
		"common.error":   "Error",
		"common.success": "Success",
	},
}
