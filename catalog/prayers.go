package catalog

import "github.com/ClassroomPrayers/calendar"

// PrayerEntry is one catalogued prayer. Entries are defined at build time
// and never mutated.
type PrayerEntry struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

var prayers = map[calendar.Weekday]map[calendar.TimeOfDay]PrayerEntry{
	calendar.Monday: {
		calendar.Morning: {
			Title: "Morning Offering",
			Text:  "O Jesus, through the Immaculate Heart of Mary, I offer you my prayers, works, joys, and sufferings of this day in union with the holy sacrifice of the Mass throughout the world. I offer them for all the intentions of your sacred heart: the salvation of souls, reparation for sin, the reunion of all Christians. I offer them for the intentions of our bishops and of all the apostles of prayer, and in particular for those recommended by our Holy Father this month. Amen.",
		},
		calendar.Afternoon: {
			Title: "Our Father",
			Text:  "Our Father, who art in heaven, hallowed be thy name; thy kingdom come, thy will be done, on earth as it is in heaven. Give us this day our daily bread and forgive us our trespasses, as we forgive those who trespass against us and lead us not into temptation, but deliver us from evil. Amen.",
		},
	},
	calendar.Tuesday: {
		calendar.Morning: {
			Title: "St. Teresa of Avila Prayer",
			Text:  "Grant that in all things, great and small, today and all the days of my life, I may do whatever You require of me. Help me respond to the slightest prompting of Your Grace, so that I may be Your trustworthy instrument for Your honor. May Your Will be done in time and in eternity by me, in me, and through me. Amen.",
		},
		calendar.Afternoon: {
			Title: "Glory Be",
			Text:  "Glory be to the Father, and to the Son, and to the Holy Spirit. As it was in the beginning, is now, and ever shall be, world without end. Amen.",
		},
	},
	calendar.Wednesday: {
		calendar.Morning: {
			Title: "Memorare",
			Text:  "Remember, O most gracious Virgin Mary, that never was it known that anyone who fled to thy protection, implored thy help, or sought thy intercession was left unaided. Inspired with this confidence, we turn to thee, O Virgin of virgins, our Mother. To thee we come, before thee we stand, sinful and sorrowful. O Mother of the Word Incarnate, do not despise our petitions, but in thy mercy hear and answer us. Amen.",
		},
		calendar.Afternoon: {
			Title: "Hail Mary",
			Text:  "Hail Mary, full of grace, the Lord is with thee. Blessed art thou among women and blessed is the fruit of thy womb, Jesus. Holy Mary, mother of God, pray for us sinners now and at the hour of our death. Amen.",
		},
	},
	calendar.Thursday: {
		calendar.Morning: {
			Title: "Prayer to Our Guardian Angel",
			Text:  "Angel of God, my guardian dear, to whom God’s love commits me here, ever this day be at my side to light and guard, to rule and guide. Amen.",
		},
		calendar.Afternoon: {
			Title: "Fatima Prayer",
			Text:  "O my Jesus, forgive us our sins, save us from the fires of hell. Lead all souls to Heaven, especially those who are most in need of Your mercy. Amen.",
		},
	},
	calendar.Friday: {
		calendar.Morning: {
			Title: "Serenity Prayer",
			Text:  "O God, grant me the serenity to accept the things I cannot change, the courage to change the things I can, and the wisdom to know the difference. Amen.",
		},
		calendar.Afternoon: {
			Title: "Anima Christi",
			Text:  "Soul of Christ, make me holy. Body of Christ, save me. Blood of Christ, fill me with love. Water from Christ’s side, wash me. Passion of Christ, strengthen me. Good Jesus, hear me. Within your wounds, hide me. Never let me be parted from you. From the evil enemy, protect me. At the hour of my death, call me, and tell me to come to you that with your saints I may praise you through all eternity. Amen.",
		},
	},
}
