package seed

import (
	"time"

	"github.com/siahsang/ncnews/models"
)

const defaultImg = "https://images.pexels.com/photos/97050/pexels-photo-97050.jpeg?w=700&h=700"

// Data is everything one seed run inserts. Article and comment ids are assigned by the
// database in slice order, starting at 1.
type Data struct {
	Topics   []models.Topic
	Users    []models.User
	Articles []models.Article
	Comments []models.Comment
}

// Datasets names the data sets the seed command can load.
var Datasets = map[string]func() Data{
	"test":        TestData,
	"development": DevelopmentData,
}

func at(unixMillis int64) time.Time {
	return time.UnixMilli(unixMillis).UTC()
}

func article(title, topic, author, body string, createdAt int64, votes int) models.Article {
	return models.Article{
		Title:         title,
		Topic:         topic,
		Author:        author,
		Body:          body,
		CreatedAt:     at(createdAt),
		Votes:         votes,
		ArticleImgURL: defaultImg,
	}
}

func comment(articleID int64, author, body string, votes int, createdAt int64) models.Comment {
	return models.Comment{
		ArticleID: articleID,
		Author:    author,
		Body:      body,
		Votes:     votes,
		CreatedAt: at(createdAt),
	}
}

// TestData is a small fixed set: topic "mitch" has 12 of the 13 articles, article 1
// starts at 100 votes and carries 11 of the 18 comments, and user "lurker" has
// written nothing.
func TestData() Data {
	return Data{
		Topics: []models.Topic{
			{Slug: "mitch", Description: "The man, the Mitch, the legend"},
			{Slug: "cats", Description: "Not dogs"},
			{Slug: "paper", Description: "what books are made of"},
		},
		Users: []models.User{
			{Username: "butter_bridge", Name: "jonny", AvatarURL: "https://www.healthytherapies.com/wp-content/uploads/2016/06/Lime3.jpg"},
			{Username: "icellusedkars", Name: "sam", AvatarURL: "https://avatars2.githubusercontent.com/u/24604688?s=460&v=4"},
			{Username: "rogersop", Name: "paul", AvatarURL: "https://avatars2.githubusercontent.com/u/24394918?s=400&v=4"},
			{Username: "lurker", Name: "do_nothing", AvatarURL: "https://www.golenbock.com/wp-content/uploads/2015/01/placeholder-user.png"},
		},
		Articles: []models.Article{
			article("Living in the shadow of a great man", "mitch", "butter_bridge", "I find this existence challenging", 1594329060000, 100),
			article("Sony Vaio; or, The Laptop", "mitch", "icellusedkars", "Call me Mitchell. Some years ago, never mind how long precisely, I had little money in my purse.", 1602828180000, 0),
			article("Eight pug gifs that remind me of mitch", "mitch", "icellusedkars", "some gifs", 1604394720000, 0),
			article("Student SUES Mitch!", "mitch", "rogersop", "We all love Mitch and his wonderful, unique typing style.", 1588731240000, 0),
			article("UNCOVERED: catspiracy to bring down democracy", "cats", "rogersop", "Bastet walks amongst us, and the cats are taking arms!", 1596464040000, 0),
			article("A", "mitch", "icellusedkars", "Delicious tin of cat food", 1602986400000, 0),
			article("Z", "mitch", "icellusedkars", "I was hungry.", 1578406080000, 0),
			article("Does Mitch predate civilisation?", "mitch", "icellusedkars", "Archaeologists have uncovered a gigantic statue from the dawn of humanity.", 1587089280000, 0),
			article("They're not exactly dogs, are they?", "mitch", "butter_bridge", "Well? Think about it.", 1591438200000, 0),
			article("Seven inspirational thought leaders from Manchester UK", "mitch", "rogersop", "Who are we kidding, there is only one, and it's Mitch!", 1589433300000, 0),
			article("Am I a cat?", "mitch", "icellusedkars", "Having run out of ideas for articles, I am staring at the wall blankly, like a cat.", 1579126860000, 0),
			article("Moustache", "mitch", "butter_bridge", "Have you seen the size of that thing?", 1602419040000, 0),
			article("Another article about Mitch", "mitch", "butter_bridge", "There will never be enough articles about Mitch!", 1602419040000, 0),
		},
		Comments: []models.Comment{
			comment(9, "butter_bridge", "Oh, I've got compassion running out of my nose, pal! I'm the Sultan of Sentiment!", 16, 1586179020000),
			comment(1, "butter_bridge", "The beautiful thing about treasure is that it exists. Got to find out what kind of sheets these are; not cotton, not rayon, silky.", 14, 1604113380000),
			comment(1, "icellusedkars", "Replacing the quiet elegance of the dark suit and tie with the casual indifference of these muted earth tones is a form of fashion suicide, but, uh, call me crazy.", 100, 1583025180000),
			comment(1, "icellusedkars", " I carry a log - yes. Is it funny to you? It is not to me.", -100, 1582459260000),
			comment(1, "icellusedkars", "I hate streaming noses", 0, 1604437200000),
			comment(1, "icellusedkars", "I hate streaming eyes even more", 0, 1586642520000),
			comment(3, "icellusedkars", "Lobster pot", 0, 1589577540000),
			comment(1, "icellusedkars", "Delicious crackerbreads", 0, 1586899140000),
			comment(1, "icellusedkars", "Superficially charming", 0, 1577848080000),
			comment(3, "icellusedkars", "git push origin master", 0, 1592641440000),
			comment(3, "icellusedkars", "Ambidextrous marsupial", 0, 1600560600000),
			comment(1, "icellusedkars", "Massive intercranial brain haemorrhage", 0, 1583133000000),
			comment(1, "icellusedkars", "Fruit pastilles", 0, 1592220300000),
			comment(5, "icellusedkars", "What do you see? I have no idea where this will lead us. This place I speak of, is known as the Black Lodge.", 16, 1591682400000),
			comment(5, "butter_bridge", "I am 100% sure that we're not completely sure.", 1, 1606176480000),
			comment(1, "butter_bridge", "This is a bad article name", 1, 1602433380000),
			comment(6, "butter_bridge", "This morning, I showered for nine minutes.", 16, 1595294400000),
			comment(1, "icellusedkars", "The owls are not what they seem.", 20, 1584205320000),
		},
	}
}

// DevelopmentData extends TestData with a second subject area for local use.
func DevelopmentData() Data {
	data := TestData()

	data.Topics = append(data.Topics,
		models.Topic{Slug: "coding", Description: "Code is love, code is life"},
		models.Topic{Slug: "cooking", Description: "Hey good looking, what you got cooking?"},
	)
	data.Users = append(data.Users,
		models.User{Username: "tickle122", Name: "Tom Tickle", AvatarURL: "https://vignette.wikia.nocookie.net/mrmen/images/d/d6/Mr-Tickle-9a.png/revision/latest?cb=20180127221953"},
		models.User{Username: "jessjelly", Name: "Jess Jelly", AvatarURL: "https://vignette.wikia.nocookie.net/mrmen/images/4/4f/MR_JELLY_4A.jpg/revision/latest?cb=20180104121141"},
	)

	first := int64(len(data.Articles)) + 1
	data.Articles = append(data.Articles,
		article("Running a Node App", "coding", "jessjelly", "This is part two of a series on how to get up and running with Systemd and Node.js.", 1604728980000, 0),
		article("The Rise Of Thinking Machines: How IBM's Watson Takes On The World", "coding", "jessjelly", "Many people know Watson as the IBM-developed cognitive super computer that won the Jeopardy! gameshow in 2011.", 1589418120000, 0),
		article("22 Amazing open source React projects", "coding", "tickle122", "This is a collection of open source apps built with React.JS library.", 1592551080000, 0),
		article("Stone Soup", "cooking", "tickle122", "The first day I put my family on a Paleolithic diet, I made my kids fried eggs and sausage for breakfast.", 1591010160000, 0),
	)
	data.Comments = append(data.Comments,
		comment(first, "tickle122", "Itaque quisquam est similique et est perspiciatis reprehenderit voluptatem autem.", -1, 1590103140000),
		comment(first, "jessjelly", "Nobis consequatur animi. Ullam nobis quaerat voluptates veniam.", 7, 1578406080000),
		comment(first+2, "tickle122", "Qui sunt sit voluptas repellendus sed. Voluptatem et repellat fugiat.", 3, 1601468760000),
		comment(first+3, "butter_bridge", "Rerum voluptatem quam odio facilis quis illo unde.", 0, 1590071040000),
	)

	return data
}
