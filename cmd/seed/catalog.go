package main

import "github.com/iliyamo/movie-catalog/internal/validation"

func year(y int) *int { return &y }

// sampleMovies is the demo catalog.
var sampleMovies = []validation.CreateMovieRequest{
	{Title: "Inception", Language: "English", Genres: []string{"Action", "Sci-Fi", "Thriller"}, ReleaseYear: year(2010)},
	{Title: "The Dark Knight", Language: "English", Genres: []string{"Action", "Crime", "Drama"}, ReleaseYear: year(2008)},
	{Title: "Interstellar", Language: "English", Genres: []string{"Adventure", "Drama", "Sci-Fi"}, ReleaseYear: year(2014)},
	{Title: "The Matrix", Language: "English", Genres: []string{"Action", "Sci-Fi"}, ReleaseYear: year(1999)},
	{Title: "Pulp Fiction", Language: "English", Genres: []string{"Crime", "Drama"}, ReleaseYear: year(1994)},
	{Title: "Get Out", Language: "English", Genres: []string{"Horror", "Thriller"}, ReleaseYear: year(2017)},
	{Title: "La La Land", Language: "English", Genres: []string{"Drama", "Romance"}, ReleaseYear: year(2016)},
	{Title: "The Grand Budapest Hotel", Language: "English", Genres: []string{"Adventure", "Comedy"}, ReleaseYear: year(2014)},
	{Title: "Mad Max: Fury Road", Language: "English", Genres: []string{"Action", "Adventure", "Sci-Fi"}, ReleaseYear: year(2015)},
	{Title: "The Lord of the Rings", Language: "English", Genres: []string{"Adventure", "Fantasy"}, ReleaseYear: year(2001)},
	{Title: "Parasite", Language: "Korean", Genres: []string{"Comedy", "Drama", "Thriller"}, ReleaseYear: year(2019)},
	{Title: "Oldboy", Language: "Korean", Genres: []string{"Action", "Drama", "Thriller"}, ReleaseYear: year(2003)},
	{Title: "Train to Busan", Language: "Korean", Genres: []string{"Action", "Horror"}, ReleaseYear: year(2016)},
	{Title: "Memories of Murder", Language: "Korean", Genres: []string{"Crime", "Drama"}, ReleaseYear: year(2003)},
	{Title: "Spirited Away", Language: "Japanese", Genres: []string{"Adventure", "Fantasy"}, ReleaseYear: year(2001)},
	{Title: "Seven Samurai", Language: "Japanese", Genres: []string{"Action", "Drama"}, ReleaseYear: year(1954)},
	{Title: "Your Name", Language: "Japanese", Genres: []string{"Drama", "Fantasy", "Romance"}, ReleaseYear: year(2016)},
	{Title: "Pan's Labyrinth", Language: "Spanish", Genres: []string{"Drama", "Fantasy"}, ReleaseYear: year(2006)},
	{Title: "The Secret in Their Eyes", Language: "Spanish", Genres: []string{"Crime", "Drama", "Thriller"}, ReleaseYear: year(2009)},
	{Title: "3 Idiots", Language: "Hindi", Genres: []string{"Comedy", "Drama"}, ReleaseYear: year(2009)},
	{Title: "Dangal", Language: "Hindi", Genres: []string{"Action", "Drama"}, ReleaseYear: year(2016)},
	{Title: "Lagaan", Language: "Hindi", Genres: []string{"Adventure", "Drama"}, ReleaseYear: year(2001)},
	{Title: "Andhadhun", Language: "Hindi", Genres: []string{"Comedy", "Crime", "Thriller"}, ReleaseYear: year(2018)},
	{Title: "Baahubali: The Beginning", Language: "Telugu", Genres: []string{"Action", "Drama", "Fantasy"}, ReleaseYear: year(2015)},
	{Title: "RRR", Language: "Telugu", Genres: []string{"Action", "Drama"}, ReleaseYear: year(2022)},
	{Title: "Vikram Vedha", Language: "Tamil", Genres: []string{"Action", "Crime", "Thriller"}, ReleaseYear: year(2017)},
	{Title: "Super Deluxe", Language: "Tamil", Genres: []string{"Comedy", "Crime", "Drama"}, ReleaseYear: year(2019)},
	{Title: "Drishyam", Language: "Malayalam", Genres: []string{"Crime", "Drama", "Thriller"}, ReleaseYear: year(2013)},
	{Title: "Premam", Language: "Malayalam", Genres: []string{"Comedy", "Drama", "Romance"}, ReleaseYear: year(2015)},
	{Title: "KGF: Chapter 1", Language: "Kannada", Genres: []string{"Action", "Crime", "Drama"}},
}
