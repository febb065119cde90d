package app

// Canonical site content. The estate sits in Neot Golan, southern Golan
// Heights; attraction coordinates and distances are from the compound.

type attractionEntry struct {
	id       string
	category string
	lat, lon float64
	km       float64
	name     map[string]string
	desc     map[string]string
}

var attractionsData = []attractionEntry{
	{
		id: "zavitan", category: "nature", lat: 32.9381, lon: 35.7097, km: 18,
		name: map[string]string{"he": "נחל זוויתן", "en": "Zavitan Stream"},
		desc: map[string]string{
			"he": "מסלול הליכה עם בריכות ומפלים בשמורת יער יהודיה",
			"en": "Hiking trail with pools and waterfalls in the Yehudiya Forest reserve",
		},
	},
	{
		id: "kursi", category: "heritage", lat: 32.8262, lon: 35.6501, km: 9,
		name: map[string]string{"he": "גן לאומי כורסי", "en": "Kursi National Park"},
		desc: map[string]string{
			"he": "שרידי מנזר ביזנטי על חוף הכנרת",
			"en": "Remains of a Byzantine monastery on the shore of the Sea of Galilee",
		},
	},
	{
		id: "golan-beach", category: "activity", lat: 32.7942, lon: 35.6418, km: 8,
		name: map[string]string{"he": "חוף גולן", "en": "Golan Beach"},
		desc: map[string]string{
			"he": "חוף רחצה מוסדר בכנרת עם פעילויות מים",
			"en": "A managed Sea of Galilee beach with water activities",
		},
	},
	{
		id: "ofir-lookout", category: "nature", lat: 32.7801, lon: 35.6932, km: 3,
		name: map[string]string{"he": "מצפה אופיר", "en": "Ofir Lookout"},
		desc: map[string]string{
			"he": "תצפית פנורמית על הכנרת, מרחק נסיעה קצר מהאחוזה",
			"en": "Panoramic viewpoint over the Sea of Galilee, a short drive from the estate",
		},
	},
	{
		id: "hamat-gader", category: "activity", lat: 32.6840, lon: 35.6655, km: 22,
		name: map[string]string{"he": "חמת גדר", "en": "Hamat Gader"},
		desc: map[string]string{
			"he": "מרחצאות מים חמים ופארק תנינים בעמק הירמוך",
			"en": "Hot springs and a crocodile park in the Yarmouk valley",
		},
	},
	{
		id: "golan-wineries", category: "food", lat: 32.8662, lon: 35.7378, km: 14,
		name: map[string]string{"he": "יקבי רמת הגולן", "en": "Golan Heights Wineries"},
		desc: map[string]string{
			"he": "סיורי טעימות יין ביקבי הבוטיק של הרמה",
			"en": "Wine-tasting tours at the boutique wineries of the Heights",
		},
	},
}

type galleryEntry struct {
	src, thumb string
	alt        map[string]string
}

var galleryData = []galleryEntry{
	{
		src: "/images/gallery/pool.jpg", thumb: "/images/gallery/thumbs/pool.jpg",
		alt: map[string]string{"he": "הבריכה המחוממת", "en": "The heated pool"},
	},
	{
		src: "/images/gallery/jacuzzi.jpg", thumb: "/images/gallery/thumbs/jacuzzi.jpg",
		alt: map[string]string{"he": "ג'קוזי בסוויטה", "en": "Suite jacuzzi"},
	},
	{
		src: "/images/gallery/sauna.jpg", thumb: "/images/gallery/thumbs/sauna.jpg",
		alt: map[string]string{"he": "הסאונה היבשה", "en": "The dry sauna"},
	},
	{
		src: "/images/gallery/cabin-1.jpg", thumb: "/images/gallery/thumbs/cabin-1.jpg",
		alt: map[string]string{"he": "יחידת אירוח - חדר שינה", "en": "Guest unit - bedroom"},
	},
	{
		src: "/images/gallery/cabin-2.jpg", thumb: "/images/gallery/thumbs/cabin-2.jpg",
		alt: map[string]string{"he": "יחידת אירוח - פינת ישיבה", "en": "Guest unit - sitting area"},
	},
	{
		src: "/images/gallery/garden.jpg", thumb: "/images/gallery/thumbs/garden.jpg",
		alt: map[string]string{"he": "גינת האחוזה", "en": "The estate garden"},
	},
	{
		src: "/images/gallery/view.jpg", thumb: "/images/gallery/thumbs/view.jpg",
		alt: map[string]string{"he": "נוף לכנרת", "en": "View of the Sea of Galilee"},
	},
}
