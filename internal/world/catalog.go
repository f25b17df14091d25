package world

// Catalog returns the built-in registry of the four worlds.
func Catalog() *Registry {
	return NewRegistry(spaceWorld(), godWorld(), spiritWorld(), earthWorld())
}

func spaceWorld() *World {
	return &World{
		ID:          Space,
		Name:        "Space World",
		Icon:        "🚀",
		Description: "Stars glow around you. Explore the cosmos and its mysteries.",
		Topics:      []string{"planets", "stars", "galaxies", "black holes", "space exploration"},
		Rules: []TopicRule{
			{Any: []string{"planet"}, Reply: "Our solar system has 8 planets, each with unique characteristics. From Mercury's extreme temperatures to Neptune's fierce winds, each world tells a story of cosmic evolution."},
			{Any: []string{"star"}, Reply: "Stars are massive nuclear furnaces that light the cosmos. Our Sun, a G-type main-sequence star, provides the energy that makes life possible."},
			{Any: []string{"black hole"}, Reply: "Black holes are regions where gravity is so strong that nothing can escape. They form when massive stars collapse at the end of their lives."},
			{Any: []string{"galaxy"}, Reply: "Galaxies are vast collections of stars, gas, and dust. Our Milky Way contains 100-400 billion stars! The observable universe has billions of galaxies."},
			{Any: []string{"mars"}, Reply: "Mars, the Red Planet, is our cosmic neighbor! It has the largest volcano in the solar system - Olympus Mons, three times taller than Mount Everest!"},
		},
		Flavor: []string{
			"🚀 Space awaits your curiosity! Ask me about planets, stars, black holes, or galaxies!",
			"The cosmos is vast and beautiful. What celestial wonders interest you today?",
			"From distant stars to mysterious black holes, space holds endless mysteries!",
		},
	}
}

func godWorld() *World {
	return &World{
		ID:          God,
		Name:        "God World",
		Icon:        "✨",
		Description: "A calm divine realm. Knowledge, balance, and peace surround you.",
		Topics:      []string{"wisdom", "balance", "peace", "philosophy", "spirituality"},
		Rules: []TopicRule{
			{Any: []string{"why"}, With: []string{"life", "exist", "suffer"}, Reply: "Life's purpose is to experience, grow, and love. Suffering teaches us compassion. Every challenge is a teacher in disguise."},
			{Any: []string{"meaning", "purpose"}, Reply: "Your purpose is uniquely yours - to grow, to love, and to be your true self. The universe celebrates your existence."},
			{Any: []string{"wisdom", "knowledge"}, Reply: "True wisdom comes from understanding both the light and shadow within ourselves. It is a journey, not a destination."},
			{Any: []string{"peace"}, Reply: "Peace is not the absence of conflict, but the presence of inner calm. This realm teaches us to find balance in all things."},
			{Any: []string{"balance"}, Reply: "Balance is the key to harmony. In the God Realm, we learn that every action has an equal and opposite reaction."},
			{Any: []string{"karma"}, Reply: "Karma is not punishment - it's the universe reflecting back what we put out. Kindness creates ripples that return to us."},
			{Any: []string{"meditat", "breath"}, Reply: "Meditation quiets the mind's chatter. In stillness, we hear our soul's whisper. Even a single breath can bring peace."},
			{Any: []string{"soul", "spirit"}, Reply: "Your soul is the eternal part of you - beyond body and mind. It carries your essence across many journeys."},
			{Any: []string{"love"}, Reply: "Love is the highest vibration. It heals, transforms, and connects all things. In God Realm, we remember love is our true nature."},
			{Any: []string{"fear", "afraid"}, Reply: "Fear is a teacher, not an enemy. It shows us what we need to overcome. Courage is feeling fear and walking forward anyway."},
			{Any: []string{"death", "die"}, Reply: "Death is not the end, but a transformation. Like day becomes night, our essence continues in new forms."},
			{Any: []string{"happy", "joy"}, Reply: "Joy is your birthright. The divine celebrates your existence! Find joy in simple moments - a breath, a smile, a sunset."},
			{Any: []string{"sad", "unhappy", "depress"}, Reply: "Even in darkness, light exists. Your feelings are valid. This too shall pass. Be gentle with yourself."},
			{Any: []string{"angry", "rage"}, Reply: "Anger is energy asking for transformation. Acknowledge it, then channel it into positive change."},
			{Any: []string{"help", "guide"}, Reply: "I am here to guide you. Ask about: wisdom, peace, balance, karma, meditation, love, or your life's purpose. What calls to you?"},
		},
		Flavor: []string{
			"✨ Divine wisdom flows through this realm. Seekers like you find peace and enlightenment here.",
			"The God Realm teaches balance, wisdom, and inner peace. What calls to your soul?",
			"Here, we explore the deeper meanings of existence. What wisdom do you seek?",
			"🌟 In this sacred space, all questions lead inward. What would you like to explore?",
			"The divine light illuminates your path. Ask, and you shall receive insight.",
		},
	}
}

func spiritWorld() *World {
	return &World{
		ID:          Spirit,
		Name:        "Spirit World",
		Icon:        "👻",
		Description: "Soft whispers of lost souls. Emotions are strong here.",
		Topics:      []string{"emotions", "memories", "intuition", "feelings", "spirits"},
		Rules: []TopicRule{
			{Any: []string{"feel", "emotion"}, Reply: "Emotions are the compass of our soul. What is your heart telling you?"},
			{Any: []string{"memory"}, Reply: "Memories shape who we are. They are the threads that weave together the story of our lives."},
			{Any: []string{"intuition"}, Reply: "Intuition is the voice of your higher self. Trusting it leads to profound insights."},
		},
		Flavor: []string{
			"👻 The ethereal energies whisper ancient secrets. Your emotional journey continues here.",
			"In the Spirit World, emotions and memories intertwine. How are you feeling?",
			"The spirit realm reflects our inner truths. What would you like to explore?",
		},
	}
}

func earthWorld() *World {
	return &World{
		ID:          Earth,
		Name:        "Earth World",
		Icon:        "🌍",
		Description: "Explore our beautiful planet - nature, cultures, and history.",
		Topics:      []string{"nature", "cultures", "history", "geography", "science"},
		Rules: []TopicRule{
			{Any: []string{"nature"}, Reply: "Earth is home to incredible biodiversity. From microscopic organisms to towering redwoods, life finds a way everywhere."},
			{Any: []string{"history"}, Reply: "Human history is filled with remarkable stories of exploration, discovery, and transformation. What era interests you?"},
			{Any: []string{"animal"}, Reply: "Earth hosts millions of species! From deep ocean creatures to majestic birds, each plays a vital role in our planet's ecosystem."},
			{Any: []string{"science"}, Reply: "Science helps us understand our world! From physics to biology, every discovery unveils new mysteries."},
		},
		Flavor: []string{
			"🌍 Our beautiful blue planet holds countless wonders! What aspect of Earth interests you?",
			"From nature to cultures, there's so much to discover about our home planet!",
			"Earth is a jewel of life and diversity. Shall we explore together?",
		},
	}
}
