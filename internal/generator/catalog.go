// AngelaMos | 2026
// catalog.go

package generator

import (
	"fmt"
	"strings"
)

var Niches = []string{
	"Fitness & Health",
	"Fashion & Style",
	"Christianity & Faith",
	"Business & Entrepreneurship",
	"Food & Cooking",
	"Travel & Adventure",
	"Technology",
	"Beauty & Skincare",
	"Personal Development",
	"Finance & Investment",
	"Entertainment",
	"Education",
}

const (
	GoalGainFollowers   = "Gain Followers"
	GoalGetSales        = "Get Sales"
	GoalGoViral         = "Go Viral"
	GoalBeFunny         = "Be Funny"
	GoalEducateAudience = "Educate Audience"
	GoalBuildCommunity  = "Build Community"
)

var Goals = []string{
	GoalGainFollowers,
	GoalGetSales,
	GoalGoViral,
	GoalBeFunny,
	GoalEducateAudience,
	GoalBuildCommunity,
}

var ContentTypes = []string{
	"Text Post",
	"Carousel",
	"Reels Idea",
	"Meme",
	"Story",
	"Video Script",
}

// fallbackGoal supplies hooks for any goal without its own list.
const fallbackGoal = GoalGoViral

var goalHooks = map[string][]string{
	GoalGainFollowers: {
		"Stop scrolling if you want to grow your following 👇",
		"This one tip changed everything for me...",
		"POV: You finally cracked the code to viral content",
		"You’re invisible online because of *this* one mistake 👀",
		"No one tells you this about building an audience...",
		"3 followers yesterday, 300 today — here’s what changed.",
		"If you're not doing this, your growth is stuck.",
		"Before you blame the algorithm, try this...",
		"Struggling to gain traction? Try posting this once a week.",
		"Growth isn’t magic. It’s method. Here’s mine:",
	},
	GoalGetSales: {
		"My client made $10K in one week using this strategy:",
		"The simple method that doubled my income:",
		"Why 99% of people fail at selling (and how to be the 1%)",
		"You don’t need more leads. You need this.",
		"This sales trick made me more in 1 day than the whole month.",
		"It’s not your product — it’s how you sell it.",
		"Here’s why your DMs aren’t converting (and how to fix it):",
		"How to turn content into cash — no hard sells, no stress.",
		"Forget funnels. Do this instead and watch your sales spike.",
		"The fastest path from post to profit? Let me show you.",
	},
	GoalGoViral: {
		"This is about to blow your mind 🤯",
		"Plot twist: Everything you know is wrong",
		"The secret that influencers don't want you to know:",
		"I didn’t expect this to go viral. But it did. Here’s why:",
		"100K views in 24 hours. Here’s what made it work:",
		"You won't believe how simple this viral hack is...",
		"Everyone told me this wouldn’t work — now it has 1M views.",
		"This post broke the internet. Let’s break it again.",
		"Here’s how I made the algorithm fall in love with my content:",
		"This isn’t a trend. It’s a strategy that wins. Every. Time.",
	},
	GoalBeFunny: {
		"Me trying to be productive on Monday:",
		"When someone says pineapple doesn't belong on pizza:",
		"That awkward moment when...",
		"POV: You think you're just vibing, but your camera's on.",
		"My face when the group chat starts popping off at 2AM:",
		"If anxiety were a sport, I'd have 3 Olympic medals.",
		"They said 'act natural' — so I panicked.",
		"Who needs therapy when you’ve got group chats like this:",
		"Siri, play the soundtrack to my quarter-life crisis.",
		"Spoiler alert: I didn’t have my life together at 5AM either.",
	},
	GoalEducateAudience: {
		"Most people misunderstand this — let me break it down:",
		"What schools never taught us but we all need to know:",
		"This one concept changed how I see everything:",
		"Don't learn the hard way. Here's what I wish I knew sooner.",
		"Here’s what no one’s teaching (but should be):",
		"Your brain is about to grow 3 sizes. 🧠",
		"Warning: This will challenge what you thought was true.",
		"No fluff, just facts — here’s how it *actually* works:",
		"The truth behind the trend everyone is blindly following:",
		"Ever wondered how this really works? Let me show you.",
	},
	GoalBuildCommunity: {
		"Let’s get real for a second — no filters, no fluff.",
		"If you've ever felt alone, this one’s for you.",
		"We're all figuring it out — here’s what helped me.",
		"The comments are open — let's talk about it. 👇",
		"You belong here, even on your worst days.",
		"I built this space for people like us.",
		"We’re stronger together. Always.",
		"Here's your reminder that you’re not alone in this.",
		"Join the conversation — your voice matters.",
		"Let’s normalize talking about this stuff. Today.",
	},
}

var nicheHashtags = map[string]string{
	"Fitness & Health":            "#fitness #health #workout #gym #motivation #fitnessmotivation #healthylifestyle #fitspo #training #wellness",
	"Fashion & Style":             "#fashion #style #ootd #fashionista #styleinspo #outfitoftheday #fashionblogger #trendy #stylish #fashionstyle",
	"Christianity & Faith":        "#faith #christian #jesus #god #prayer #bible #blessed #christianlife #faithjourney #godisgood",
	"Business & Entrepreneurship": "#business #entrepreneur #success #mindset #hustle #businessowner #motivation #leadership #growth #entrepreneurlife",
}

const genericHashtags = "#viral #content #socialmedia #instagram #fyp #facebook #trending #growth #engagement #influence #creator"

// HooksFor returns the candidate hooks for goal, falling back to the
// "Go Viral" list.
func HooksFor(goal string) []string {
	if hooks, ok := goalHooks[goal]; ok {
		return hooks
	}
	return goalHooks[fallbackGoal]
}

// HashtagsFor is deterministic: the niche's fixed tag string or the generic one.
func HashtagsFor(niche string) string {
	if tags, ok := nicheHashtags[niche]; ok {
		return tags
	}
	return genericHashtags
}

// CTAsFor lists the call-to-action candidates for niche.
func CTAsFor(niche string) []string {
	return []string{
		"Double tap if you agree! 💪",
		fmt.Sprintf("Save this post on %s for later and share with someone who needs to see it!", niche),
		"What's your biggest challenge? Drop it in the comments below! 👇",
		"Follow for more tips like this! 🔥",
		"Tag a friend who needs to see this! 👥",
	}
}

func captionFor(niche string) string {
	return fmt.Sprintf(captionTemplate, strings.ToLower(niche))
}

const captionTemplate = `Here's the thing about %s...

Most people get it completely wrong.

They chase overnight success.
They copy trends hoping for virality.
They think success comes from complicated strategies, expensive tools, or having the “perfect” setup.

But the truth? It's much simpler, and far more powerful.

After working with hundreds of clients, digging into what truly moves the needle, I've discovered the ONE thing that separates real winners from the rest:

✨ Consistency + Value + Authenticity = Results that last ✨

It’s not about going viral once. It’s about building trust daily.
It's not about shouting louder. It’s about speaking clearer.
It’s not about followers. It’s about the lives you impact.

Your audience isn’t looking for a celebrity.
They’re craving realness.
They’re searching for someone who understands their struggles,
Their doubts,
Their dreams.

They don’t need another guru.
They need someone who’s walked their path.
Someone who failed, learned, and rose again.
Someone who can show them what’s possible without pretending to be perfect.

That someone could be you.

If you’re ready to stop blending in,
If you’re ready to start building something meaningful…

Then this is your sign to begin.

Let’s write your story, one authentic piece of content at a time. 📈🚀`
