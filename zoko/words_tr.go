package zoko

import "math/rand"

// The Wordle word pool. Everyday Turkish nouns, already lowercase in
// Turkish casing, grouped by rune length. Membership is informational
// only - guesses outside the pool are still scored.

var turkishWords5 = []string{
	"kalem", "kitap", "deniz", "bahar", "tahta", "sabah", "yemek",
	"bulut", "orman", "demir", "tablo", "kumaş", "çiçek", "böcek",
	"balık", "horoz", "tavuk", "kiraz", "elmas", "armut", "meyve",
	"sebze", "havuç", "köpek", "perde", "masal", "roman", "duvar",
	"gölge", "güneş", "zaman", "hafta", "terzi", "zirve", "vapur",
	"vagon", "şehir", "kahve", "çorba", "pilav", "börek", "bıçak",
	"çatal", "kaşık", "tabak", "keman", "bagaj", "havlu", "aslan",
	"geyik",
}

var turkishWords6 = []string{
	"bardak", "yastık", "yorgan", "yıldız", "toprak", "rüzgar",
	"saniye", "dakika", "takvim", "fincan", "kardeş", "balkon",
	"tavşan", "kaplan", "meydan", "market", "kalori", "elbise",
	"gömlek", "mutfak", "oyuncu", "ressam", "doktor", "kelime",
	"sincap", "mevsim", "sinema", "karpuz",
}

var turkishWords7 = []string{
	"pencere", "manzara", "hemşire", "öğrenci", "kitapçı", "gezegen",
	"telefon", "armağan", "şemsiye", "okyanus", "kelebek", "karınca",
	"patates", "tiyatro", "trompet", "denizci", "balıkçı", "gökyüzü",
	"yeryüzü",
}

func wordsForLength(length int) []string {
	switch length {
	case 5:
		return turkishWords5
	case 6:
		return turkishWords6
	case 7:
		return turkishWords7
	default:
		return nil
	}
}

// pickWord returns a random word with the given rune length. Lengths
// outside [5,7] fall back to the 5-letter pool.
func pickWord(rng *rand.Rand, length int) string {
	pool := wordsForLength(length)
	if len(pool) == 0 {
		pool = turkishWords5
	}
	return pool[rng.Intn(len(pool))]
}

// InDictionary reports whether a (normalized) word is in the pool.
func InDictionary(word string) bool {
	for _, w := range wordsForLength(len([]rune(word))) {
		if w == word {
			return true
		}
	}
	return false
}
