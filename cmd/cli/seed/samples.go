package seed

// sample is one piece of demo content installed by the seed command.
type sample struct {
	Title  string
	Tags   []string
	Teaser string
	Body   string
}

var samples = []sample{
	{
		Title:  "Builder Story: From Solo Dev to Shipping at Scale",
		Tags:   []string{"Builders", "Engineering"},
		Teaser: "How one developer grew from weekend side projects to leading a team that ships to millions of users every day.",
		Body: "Every great product starts with a single developer and an idea. This is the story of " +
			"how a solo weekend project turned into a platform serving millions.\n\n" +
			"It began in a coffee shop in Portland. Armed with nothing but a laptop and a vague idea " +
			"about making project management less painful, I started writing code. No frameworks, no " +
			"fancy tooling, just a scripting language and a SQLite database.\n\n" +
			"The first version was embarrassingly simple. A todo list with due dates and a calendar " +
			"view. But people started using it. First five, then fifty, then five hundred users signed " +
			"up in a single week.\n\n" +
			"Scaling brought new challenges. The SQLite database that worked fine for fifty users " +
			"started choking at five thousand. I migrated to PostgreSQL, added caching with Redis, and " +
			"learned more about database indexing in one weekend than in four years of college.\n\n" +
			"Today we serve over two million active users. The codebase has been rewritten twice. " +
			"The original SQLite database is long gone. But the core idea, making project management " +
			"less painful, remains exactly the same.\n\n" +
			"If you're a solo developer with an idea, start building. Ship early, listen to users, " +
			"and don't be afraid to throw code away and start over.",
	},
	{
		Title:  "Building Modern Web Apps with Spec-Driven Development",
		Tags:   []string{"Engineering", "How-tos"},
		Teaser: "Spec-driven development puts the API contract first, letting frontend and backend teams work in parallel with confidence.",
		Body: "Spec-driven development is a methodology where you define your API specification before " +
			"writing any implementation code. Think of it as writing the contract before building the house.\n\n" +
			"The core idea is simple: define your API using OpenAPI, then generate server stubs and " +
			"client SDKs from that specification. Both teams can work in parallel, knowing exactly " +
			"what the interface will look like.\n\n" +
			"We adopted this approach at AgenticEdge six months ago, and the results have been " +
			"remarkable. Integration bugs dropped by 60%. Sprint velocity increased because frontend " +
			"and backend developers no longer blocked each other.\n\n" +
			"The biggest pushback we got was that writing specs feels slow. And it is, initially. " +
			"But the time you invest upfront saves multiples downstream. No more 'the API changed' " +
			"surprises during integration week.\n\n" +
			"If your team struggles with API integration issues or frontend-backend coordination, " +
			"give spec-driven development a try. Start small with one endpoint, prove the value, " +
			"then expand.",
	},
	{
		Title:  "How to Get SaaS Product Ideas: 7 Proven Methods",
		Tags:   []string{"How-tos"},
		Teaser: "Finding the right SaaS idea is half the battle. Here are seven methods that consistently produce viable product concepts.",
		Body: "The best SaaS ideas come from real problems. Here are seven proven methods to find " +
			"ideas worth building.\n\n" +
			"1. Scratch Your Own Itch\n\nThe most successful SaaS products often start as internal " +
			"tools. Slack started as a gaming company's internal chat tool. Look at the tools you " +
			"build for yourself.\n\n" +
			"2. Mine Support Forums\n\nBrowse forums for recurring complaints. When you see the same " +
			"problem described fifty different ways, you've found a market.\n\n" +
			"3. Talk to Small Business Owners\n\nEvery awkward spreadsheet workflow is a potential " +
			"SaaS product. Ask them what takes too long.\n\n" +
			"4. Unbundle Large Platforms\n\nFind a feature in a large platform that deserves to be " +
			"its own product.\n\n" +
			"5. Improve Existing Solutions\n\nFind a tool with terrible UX and 2-star reviews. Build " +
			"the same thing but better. Execution often matters more than originality.\n\n" +
			"6. Follow Regulatory Changes\n\nNew regulations create compliance needs. GDPR spawned " +
			"dozens of successful privacy tools.\n\n" +
			"7. Watch Adjacent Markets\n\nA solution that works in one industry often works in another.",
	},
	{
		Title:  "Introducing the AI Product Planner",
		Tags:   []string{"Updates", "Engineering"},
		Teaser: "Our new AI Product Planner helps you go from idea to spec in minutes, not weeks.",
		Body: "Today we're thrilled to announce the AI Product Planner, our most ambitious feature " +
			"yet. It takes a product idea and generates a complete specification document, including " +
			"user stories, technical requirements, and a suggested architecture.\n\n" +
			"Start by describing your product idea in plain English. The AI Product Planner asks " +
			"clarifying questions, explores edge cases, and then generates a comprehensive spec with " +
			"user personas, detailed user stories, architecture recommendations, database schema " +
			"suggestions, API endpoint definitions, and an estimated timeline.\n\n" +
			"We watched our users spend weeks going from idea to actionable spec. For solo founders " +
			"and small teams, this planning phase is often where momentum dies. The AI Product " +
			"Planner compresses weeks of planning into minutes of conversation.\n\n" +
			"The AI Product Planner is available today in beta for all Pro plan subscribers. Try it " +
			"now from your dashboard under Tools.",
	},
	{
		Title:  "Why We Chose Python for Our Backend",
		Tags:   []string{"Opinion", "Engineering"},
		Teaser: "In a world of Go, Rust, and Node, we chose Python — and we'd do it again. Here's why.",
		Body: "When we started building AgenticEdge's backend in 2023, the obvious question was: what " +
			"language? We evaluated four serious contenders: Go, Rust, Node.js, and Python.\n\n" +
			"Hiring Speed\n\nWe needed to hire fast. Python has the largest pool of web developers, " +
			"and most can be productive on day one. Our first three backend hires were writing " +
			"production code within their first week.\n\n" +
			"Library Ecosystem\n\nFor our use case, data processing, API serving, and AI integration, " +
			"Python's library ecosystem is unmatched.\n\n" +
			"Async Performance\n\nModern Python with asyncio is fast enough. Our API endpoints " +
			"respond in under 50ms on average. For the hot paths where Python is too slow, we write " +
			"native extensions.\n\n" +
			"Developer Happiness\n\nThis one is hard to measure but impossible to ignore. Our " +
			"developers enjoy writing Python. They write tests voluntarily. They refactor " +
			"proactively. Happy developers write better code.\n\n" +
			"Would we choose differently today? No. Python continues to be the right choice for our " +
			"team and our product.",
	},
	{
		Title:  "Company Update: Q1 2026 Roadmap",
		Tags:   []string{"Company", "News"},
		Teaser: "A look at what the AgenticEdge team is building in Q1 2026 — from new integrations to performance improvements.",
		Body: "Happy new year from the AgenticEdge team! We're kicking off 2026 with our most " +
			"ambitious quarter yet. Here's what's on the roadmap.\n\n" +
			"New Integrations\n\nWe're adding native integrations with Linear, Notion, and Figma. " +
			"These were the top three requests from our user survey.\n\n" +
			"Performance Overhaul\n\nOur engineering team is undertaking a major performance " +
			"initiative. The goal: reduce average page load time from 1.2 seconds to under 400 " +
			"milliseconds.\n\n" +
			"Mobile App\n\nThe most requested feature of all time is finally happening. Beta testing " +
			"starts in March.\n\n" +
			"Team Growth\n\nWe're growing from 15 to 25 people this quarter, hiring across " +
			"engineering, design, and customer success.\n\n" +
			"Thank you for being part of the AgenticEdge journey. We couldn't build this without our " +
			"amazing users and community.",
	},
}
