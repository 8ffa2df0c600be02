// Package views holds the site's page components and the router that maps a
// location to the page rendered for it.
//
// Components are plain templ components. Every page except the not-found
// fallback renders head.Seo before its body so the render's head.Manager
// is filled in during the same pass.
package views

import (
	"github.com/markhazleton/mark-hazleton-s-notes/content"
	"github.com/markhazleton/mark-hazleton-s-notes/head"
)

// Person describes the site owner for structured data.
type Person struct {
	Name        string
	JobTitle    string
	Description string
	SameAs      []string
}

// Data is everything the page tree reads besides the per-render bootstrap
// payload, which pages take from the render context.
type Data struct {
	Site     head.Site
	Author   Person
	Posts    []content.Post
	Projects []content.Project
	Videos   content.VideosPayload
}

// NavLink is one entry of the primary navigation.
type NavLink struct {
	Href  string
	Label string
}

// Nav is the primary navigation shown by Layout.
var Nav = []NavLink{
	{Href: "/", Label: "Home"},
	{Href: "/blog", Label: "Blog"},
	{Href: "/projects", Label: "Projects"},
	{Href: "/github", Label: "GitHub"},
	{Href: "/videos", Label: "Videos"},
	{Href: "/contact", Label: "Contact"},
}

var footerNav = []NavLink{
	{Href: "/about", Label: "About"},
	{Href: "/now", Label: "Now"},
	{Href: "/blog", Label: "Blog"},
	{Href: "/projects", Label: "Projects"},
}
