package ai

import (
	"math/rand/v2"

	"github.com/Danchouvzv/nevsluh/models"
)

// fallbackReplies, Gemini erişilemediğinde kullanılan statik empati metinleri.
// Kategori başına 3 metin — uniform rastgele seçilir.
// Bu metinler elle yazılmıştır ve bilinçli olarak kısa/yargısızdır;
// değiştirilirken ürün ekibiyle koordine edilmeli.
var fallbackReplies = map[models.Category][]string{
	models.CategoryDream: {
		"Dreams have their own timeline. Yours matters, whether it happens tomorrow or years from now.",
		"The fact that you still hold this dream says something beautiful about you.",
		"Some dreams wait patiently for the right moment. Yours is still alive for a reason.",
	},
	models.CategoryPain: {
		"That kind of pain changes something in us. Thank you for sharing what's hard to say.",
		"You've carried this silently for so long. I hear you now.",
		"The weight of that must be enormous. Your strength in carrying it doesn't go unseen.",
	},
	models.CategoryHope: {
		"Hope is quiet rebellion against what seems inevitable. Hold onto yours.",
		"Even small hopes can light impossible paths. Yours matters.",
		"That hope you're protecting? It's worth guarding closely.",
	},
	models.CategoryQuestion: {
		"Some questions stay with us because they touch what matters most. Yours deserves space.",
		"The questions we carry often reveal more than any answer could.",
		"That's the kind of question that shapes a life. Thank you for sharing it.",
	},
	models.CategoryConfession: {
		"Bringing this into words takes courage. You've already taken the hardest step.",
		"What we confess in silence often loses some of its weight when finally spoken.",
		"This truth is part of your story, but it doesn't define all of who you are.",
	},
	models.CategoryStory: {
		"Stories like yours remind us how complex being human really is. Thank you for sharing.",
		"This moment you've shared - it matters. It's part of the human experience.",
		"Your story creates space for others to feel less alone with theirs.",
	},
}

// FallbackReply, kategori için statik yanıtlardan birini uniform rastgele seçer.
// Tanımsız kategori confession listesine düşer — her durumda bir metin döner,
// asla boş string veya error yoktur.
func FallbackReply(category models.Category) string {
	replies, ok := fallbackReplies[category]
	if !ok {
		replies = fallbackReplies[models.CategoryConfession]
	}
	return replies[rand.IntN(len(replies))]
}
