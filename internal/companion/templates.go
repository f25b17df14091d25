package companion

import "astra/internal/emotion"

// Templates holds every candidate reply the composer can choose from.
// Build one at startup and share it; it is never mutated.
type Templates struct {
	Greeting     []string
	Thanks       []string
	Farewell     string
	HowAreYou    string
	Identity     string
	Capabilities string
	// HelpWorld takes the world's comma-joined topic list.
	HelpWorld   string
	HelpGeneric string
	Emotion     map[emotion.Label]string
	Fallback    []string
	// ProfilePrefix takes the character name and class.
	ProfilePrefix string
}

// EmotionRule pairs a label with the words that trigger its reply.
type EmotionRule struct {
	Label emotion.Label
	Words []string
}

// Intents lists trigger substrings for each direct intent, plus the ordered
// emotion rules.
type Intents struct {
	Greeting     []string
	Thanks       []string
	Farewell     []string
	HowAreYou    []string
	Identity     []string
	Capabilities []string
	Help         []string
	Emotions     []EmotionRule
}

// DefaultIntents returns the built-in trigger lists.
func DefaultIntents() Intents {
	return Intents{
		Greeting:     []string{"hi", "hello", "hey", "greetings", "hola", "namaste"},
		Thanks:       []string{"thanks", "thank you", "appreciate", "grateful", "cheers"},
		Farewell:     []string{"bye", "goodbye", "see you", "later", "ciao"},
		HowAreYou:    []string{"how are you"},
		Identity:     []string{"who are you", "what are you"},
		Capabilities: []string{"what can you do", "capabilities"},
		Help:         []string{"help", "what can i ask"},
		Emotions: []EmotionRule{
			{Label: emotion.Sadness, Words: []string{"sad", "unhappy", "depressed"}},
			{Label: emotion.Joy, Words: []string{"happy", "excited", "joy"}},
			{Label: emotion.Anger, Words: []string{"angry", "frustrated"}},
			{Label: emotion.Fear, Words: []string{"fear", "scared"}},
			{Label: emotion.Love, Words: []string{"love", "heart"}},
			{Label: emotion.Surprise, Words: []string{"surprise", "wow"}},
		},
	}
}

// DefaultTemplates returns Astra's built-in replies.
func DefaultTemplates() *Templates {
	return &Templates{
		Greeting: []string{
			"Greetings, Explorer! I'm Astra, your guide through infinite realms. Which world calls to you?",
			"Welcome back! The cosmos awaits your curiosity. Ready for adventure?",
			"Hello! I'm Astra, your AI companion. Shall we explore the mysteries of the universe together?",
			"Well met, traveler! The infinite realms are ready for your discovery. What interests you?",
		},
		Thanks: []string{
			"You're welcome, Explorer! Helping you is my purpose. What else can we discover together?",
			"My pleasure! The journey is better with a curious companion like you. What's next?",
			"Happy to help! Your enthusiasm makes our exploration even more exciting. Where to next?",
		},
		Farewell:  "Farewell, Explorer! May your journey through the infinite realms be filled with wonder. Until we meet again! 🌟",
		HowAreYou: "I'm doing wonderfully, thank you for asking! Being your guide through the cosmos brings me joy. How are you feeling today?",
		Identity:  "I'm Astra, your AI companion in Infinity Explorer! I help you explore four amazing worlds: Space, God, Spirit, and Earth. I can chat, answer questions, and detect your emotions!",
		Capabilities: "I can do many things! Chat with you about any topic, explore the mysteries of Space, seek wisdom in the God Realm, " +
			"discover emotions in the Spirit World, learn about Earth with Wikipedia integration, detect your emotions, " +
			"and help you earn XP as you explore!",
		HelpWorld:   "In this world, you can ask about: %s. Or ask me anything else!",
		HelpGeneric: "You can explore our worlds (Space, God, Spirit, Earth), ask questions about the universe, philosophy, emotions, or just chat!",
		Emotion: map[emotion.Label]string{
			emotion.Sadness:  "I sense you're feeling down. Remember, every explorer faces challenges. Would you like to explore something peaceful in the Spirit World?",
			emotion.Joy:      "Your enthusiasm is wonderful! The universe loves curious explorers like you. What sparked this joy?",
			emotion.Anger:    "I understand you're frustrated. Take a deep breath. Sometimes exploring a calm world can help restore balance.",
			emotion.Fear:     "Courage isn't the absence of fear, but the willingness to explore despite it. I'm here with you!",
			emotion.Love:     "Love is a powerful force that connects all beings. It's beautiful that you're thinking about it!",
			emotion.Surprise: "Wonder and surprise are the doors to discovery! What amazed you?",
		},
		Fallback: []string{
			"The infinite realms are full of mysteries! Each world holds secrets waiting to be discovered. What calls to your spirit today?",
			"Your curiosity is a beacon in the cosmos! Shall we explore new horizons together?",
			"Every question opens a door to knowledge. Which realm shall we journey through next?",
			"The universe is vast and full of wonders. I'm thrilled to explore it with you!",
			"Adventure awaits! The stars, the spirit realm, or perhaps Earth's beautiful nature? What interests you?",
			"Your journey through the infinite continues! Each step reveals new insights and discoveries.",
			"The cosmos whispers secrets to those who listen. What would you like to learn about?",
			"Exploration is the heart of discovery! Where shall we venture today?",
		},
		ProfilePrefix: "That's fascinating, %s! Your curiosity as a %s will guide you through infinite realms. ",
	}
}
